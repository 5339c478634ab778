//go:build unit

package service

import (
	"errors"
	"testing"
)

func TestValidateSection(t *testing.T) {
	testCases := []struct {
		name      string
		input     SectionInput
		wantField string
	}{
		{"paragraph with header", SectionInput{SectionType: SectionParagraph, Header: "Intro"}, ""},
		{"paragraph with text", SectionInput{SectionType: SectionParagraph, Text: "Hello"}, ""},
		{"paragraph with neither", SectionInput{SectionType: SectionParagraph}, "header or text"},
		{"picture with media_url", SectionInput{SectionType: SectionPicture, MediaURL: "https://example.com/a.png"}, ""},
		{"picture without media_url", SectionInput{SectionType: SectionPicture, Caption: "A diagram"}, "media_url"},
		{"snippet complete", SectionInput{SectionType: SectionSnippet, Code: "x := 1", Language: "go"}, ""},
		{"snippet missing code", SectionInput{SectionType: SectionSnippet, Language: "go"}, "code"},
		{"snippet missing language", SectionInput{SectionType: SectionSnippet, Code: "x := 1"}, "language"},
		{"info with text", SectionInput{SectionType: SectionInfo, Text: "note"}, ""},
		{"info without text", SectionInput{SectionType: SectionInfo, Header: "note"}, "text"},
		{"warning without text", SectionInput{SectionType: SectionWarning}, "text"},
		{"error without text", SectionInput{SectionType: SectionError}, "text"},
		{"negative position", SectionInput{SectionType: SectionParagraph, Text: "x", Position: -1}, "position"},
		{"unknown type", SectionInput{SectionType: "table", Text: "x"}, "section_type"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSection(tc.input)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid section, got error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("expected offending field %q, got %q", tc.wantField, verr.Field)
			}
		})
	}
}

func TestValidateSections_FailsOnFirstInvalid(t *testing.T) {
	sections := []SectionInput{
		{SectionType: SectionParagraph, Position: 0, Text: "fine"},
		{SectionType: SectionSnippet, Position: 1, Code: "x := 1"},
	}
	err := ValidateSections(sections)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.SectionType != SectionSnippet || verr.Field != "language" {
		t.Errorf("expected snippet/language error, got %s/%s", verr.SectionType, verr.Field)
	}
	if verr.Position != 1 {
		t.Errorf("expected position 1 in error, got %d", verr.Position)
	}
}
