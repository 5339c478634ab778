package service

import (
	"strings"
)

// ProjectText derives the plain-text fallback from an ordered section set.
// Deterministic and pure: the same sections always yield the same text. Used
// for search, legacy consumers and revision snapshots whenever the caller
// did not supply an explicit content string.
func ProjectText(sections []SectionInput) string {
	var parts []string
	emit := func(fragment string) {
		if fragment != "" {
			parts = append(parts, fragment)
		}
	}

	for _, s := range orderedSections(sections) {
		switch s.SectionType {
		case SectionParagraph:
			emit(s.Header)
			emit(s.Text)
		case SectionInfo, SectionWarning, SectionError:
			emit(s.Text)
		case SectionSnippet:
			emit(s.Caption)
			emit(s.Code)
		case SectionPicture:
			if s.Caption != "" {
				emit(s.Caption)
			} else {
				emit(s.MediaURL)
			}
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
