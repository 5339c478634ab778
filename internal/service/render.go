package service

import (
	"bytes"
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// Renderer turns an ordered section set into sanitized HTML. Paragraph and
// notice text is treated as markdown; snippet code is escaped verbatim.
// Structural markup (figures, notice wrappers, captions) is generated here
// with escaped values, so only the markdown fragments pass through the
// sanitizer.
type Renderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewRenderer creates a Renderer with a UGC sanitation policy.
func NewRenderer() *Renderer {
	return &Renderer{
		md:        goldmark.New(),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// RenderSections renders sections in ascending position order.
func (r *Renderer) RenderSections(sections []SectionInput) (string, error) {
	var buf bytes.Buffer
	for _, s := range orderedSections(sections) {
		switch s.SectionType {
		case SectionParagraph:
			if s.Header != "" {
				fmt.Fprintf(&buf, "<h2>%s</h2>\n", html.EscapeString(s.Header))
			}
			if s.Text != "" {
				fragment, err := r.markdown(s.Text)
				if err != nil {
					return "", err
				}
				buf.WriteString(fragment)
			}
		case SectionInfo, SectionWarning, SectionError:
			fmt.Fprintf(&buf, "<div class=\"notice notice-%s\">\n", s.SectionType)
			if s.Header != "" {
				fmt.Fprintf(&buf, "<h3>%s</h3>\n", html.EscapeString(s.Header))
			}
			fragment, err := r.markdown(s.Text)
			if err != nil {
				return "", err
			}
			buf.WriteString(fragment)
			buf.WriteString("</div>\n")
		case SectionSnippet:
			buf.WriteString("<figure class=\"snippet\">\n")
			caption := s.Caption
			if caption == "" {
				caption = s.Header
			}
			if caption != "" {
				fmt.Fprintf(&buf, "<figcaption>%s</figcaption>\n", html.EscapeString(caption))
			}
			fmt.Fprintf(&buf, "<pre><code class=\"language-%s\">%s</code></pre>\n",
				html.EscapeString(s.Language), html.EscapeString(s.Code))
			buf.WriteString("</figure>\n")
		case SectionPicture:
			buf.WriteString("<figure class=\"picture\">\n")
			fmt.Fprintf(&buf, "<img src=\"%s\" alt=\"%s\">\n",
				html.EscapeString(s.MediaURL), html.EscapeString(s.Caption))
			if s.Caption != "" {
				fmt.Fprintf(&buf, "<figcaption>%s</figcaption>\n", html.EscapeString(s.Caption))
			}
			buf.WriteString("</figure>\n")
		}
	}
	return buf.String(), nil
}

func (r *Renderer) markdown(text string) (string, error) {
	var out bytes.Buffer
	if err := r.md.Convert([]byte(text), &out); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return r.sanitizer.Sanitize(out.String()), nil
}
