package service

import (
	"fmt"
	"regexp"
	"strings"
)

// Section markup is the lightweight block syntax editors type:
//
//	:::snippet go: Fetching a page
//	resp, err := client.Get(url)
//	:::end
//
// Blocks open with :::<type>, optionally followed by a context token (the
// language for snippets, the media URL for pictures) and a header after a
// colon, and close with :::end. Lines outside any block become paragraphs.

var (
	markupStartRe = regexp.MustCompile(`(?i)^:::(info|warning|error|snippet|code|paragraph|picture)(:.*|\s+.*)?$`)
	markupEndRe   = regexp.MustCompile(`(?i)^:::end\s*$`)
)

// splitDirectiveArgs splits the text after a ::: directive into the context
// token (snippet language, picture URL) and the header. "go: Title" carries
// both, ": Title" only a header. A lone token is context for snippet and
// picture directives and a header for everything else.
func splitDirectiveArgs(sectionType SectionType, rest string) (context, header string) {
	if rest == "" {
		return "", ""
	}
	if strings.HasPrefix(rest, ":") {
		return "", strings.TrimSpace(rest[1:])
	}
	takesContext := sectionType == SectionSnippet || sectionType == SectionPicture
	if !takesContext {
		return "", rest
	}
	// Split on colon-space rather than a bare colon so picture URLs with
	// scheme separators stay intact.
	if i := strings.Index(rest, ": "); i >= 0 {
		return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i+2:])
	}
	parts := strings.SplitN(rest, " ", 2)
	context = strings.TrimSuffix(parts[0], ":")
	if len(parts) == 2 {
		header = strings.TrimSpace(parts[1])
	}
	return context, header
}

// MarkupError reports unparseable section markup.
type MarkupError struct {
	Line    int
	Message string
}

func (e *MarkupError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("markup error on line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("markup error: %s", e.Message)
}

type markupBlock struct {
	sectionType SectionType
	header      string
	context     string
	body        []string
}

// ParseSectionMarkup converts block markup into ordered section inputs,
// positions assigned 0..N-1 in document order. The result still has to pass
// ValidateSections before it is persisted.
func ParseSectionMarkup(input string) ([]SectionInput, error) {
	normalized := strings.ReplaceAll(strings.ReplaceAll(input, "\r\n", "\n"), "\r", "\n")
	lines := strings.Split(normalized, "\n")

	var sections []SectionInput
	var block *markupBlock
	var loose []string

	flushParagraph := func() {
		text := strings.TrimSpace(strings.Join(loose, "\n"))
		loose = nil
		if text == "" {
			return
		}
		sections = append(sections, SectionInput{
			SectionType: SectionParagraph,
			Position:    len(sections),
			Text:        text,
		})
	}

	flushBlock := func() error {
		if block == nil {
			return nil
		}
		b := block
		block = nil
		bodyText := strings.TrimRight(strings.Join(b.body, "\n"), " \t\n")

		switch b.sectionType {
		case SectionSnippet:
			if strings.TrimSpace(bodyText) == "" {
				return &MarkupError{Message: "snippet blocks require code"}
			}
			language := b.context
			if language == "" {
				language = "text"
			}
			sections = append(sections, SectionInput{
				SectionType: SectionSnippet,
				Position:    len(sections),
				Header:      b.header,
				Code:        bodyText,
				Language:    language,
			})
		case SectionPicture:
			mediaURL := b.context
			if mediaURL == "" {
				for _, line := range strings.Split(bodyText, "\n") {
					if trimmed := strings.TrimSpace(line); trimmed != "" {
						mediaURL = trimmed
						break
					}
				}
			}
			// A picture block without any URL carries nothing; drop it.
			if mediaURL == "" {
				return nil
			}
			text := ""
			if bodyText != "" && b.context != "" {
				text = bodyText
			}
			sections = append(sections, SectionInput{
				SectionType: SectionPicture,
				Position:    len(sections),
				MediaURL:    mediaURL,
				Caption:     b.header,
				Text:        text,
			})
		default:
			text := strings.TrimSpace(bodyText)
			isNotice := b.sectionType == SectionInfo || b.sectionType == SectionWarning || b.sectionType == SectionError
			fallback := text
			if fallback == "" {
				fallback = b.header
			}
			if fallback == "" {
				fallback = b.context
			}
			if isNotice && strings.TrimSpace(fallback) == "" {
				return &MarkupError{Message: fmt.Sprintf("%s blocks require text", b.sectionType)}
			}
			if b.header != "" || text != "" || isNotice {
				sections = append(sections, SectionInput{
					SectionType: b.sectionType,
					Position:    len(sections),
					Header:      b.header,
					Text:        fallback,
				})
			}
		}
		return nil
	}

	for idx, rawLine := range lines {
		trimmed := strings.TrimSpace(rawLine)
		startMatch := markupStartRe.FindStringSubmatch(trimmed)
		isEnd := markupEndRe.MatchString(trimmed)

		if block != nil {
			if isEnd {
				if err := flushBlock(); err != nil {
					return nil, err
				}
				continue
			}
			block.body = append(block.body, rawLine)
			continue
		}

		if startMatch != nil {
			flushParagraph()

			sectionType := SectionType(strings.ToLower(startMatch[1]))
			if sectionType == "code" {
				sectionType = SectionSnippet
			}
			context, header := splitDirectiveArgs(sectionType, strings.TrimSpace(startMatch[2]))
			block = &markupBlock{sectionType: sectionType, header: header, context: context}
			continue
		}

		if isEnd {
			// Stray :::end outside a block is ignored.
			continue
		}

		if strings.HasPrefix(trimmed, ":::") {
			return nil, &MarkupError{Line: idx + 1, Message: fmt.Sprintf("unknown directive: %s", trimmed)}
		}

		loose = append(loose, rawLine)
	}

	if err := flushBlock(); err != nil {
		return nil, err
	}
	flushParagraph()

	return sections, nil
}

// SectionsToMarkup renders sections back to block markup, the inverse of
// ParseSectionMarkup for well-formed sections.
func SectionsToMarkup(sections []SectionInput) string {
	var blocks []string
	for _, s := range orderedSections(sections) {
		switch s.SectionType {
		case SectionSnippet:
			language := s.Language
			if language == "" {
				language = "text"
			}
			header := ""
			if s.Header != "" {
				header = ": " + s.Header
			}
			blocks = append(blocks, fmt.Sprintf(":::code %s%s\n%s\n:::end", language, header, s.Code))
		case SectionPicture:
			header := s.Caption
			if header == "" {
				header = s.Header
			}
			line := ":::picture " + s.MediaURL
			if header != "" {
				line += ": " + header
			}
			if s.Text != "" {
				line += "\n" + s.Text
			}
			blocks = append(blocks, line+"\n:::end")
		default:
			header := ""
			if s.Header != "" {
				header = ": " + s.Header
			}
			blocks = append(blocks, fmt.Sprintf(":::%s%s\n%s\n:::end", s.SectionType, header, s.Text))
		}
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}
