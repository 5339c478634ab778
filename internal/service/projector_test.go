//go:build unit

package service

import "testing"

func TestProjectText_ParagraphHeaderAndText(t *testing.T) {
	got := ProjectText([]SectionInput{
		{SectionType: SectionParagraph, Position: 0, Header: "Intro", Text: "Hello"},
	})
	want := "Intro\n\nHello"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestProjectText_OrdersByPosition(t *testing.T) {
	got := ProjectText([]SectionInput{
		{SectionType: SectionParagraph, Position: 2, Text: "third"},
		{SectionType: SectionParagraph, Position: 0, Text: "first"},
		{SectionType: SectionParagraph, Position: 1, Text: "second"},
	})
	want := "first\n\nsecond\n\nthird"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestProjectText_PerTypeFragments(t *testing.T) {
	testCases := []struct {
		name  string
		input SectionInput
		want  string
	}{
		{"info emits text", SectionInput{SectionType: SectionInfo, Text: "heads up"}, "heads up"},
		{"warning emits text", SectionInput{SectionType: SectionWarning, Text: "careful"}, "careful"},
		{"error emits text", SectionInput{SectionType: SectionError, Text: "broken"}, "broken"},
		{"snippet caption then code", SectionInput{SectionType: SectionSnippet, Caption: "example", Code: "x := 1", Language: "go"}, "example\n\nx := 1"},
		{"snippet code only", SectionInput{SectionType: SectionSnippet, Code: "x := 1", Language: "go"}, "x := 1"},
		{"picture prefers caption", SectionInput{SectionType: SectionPicture, MediaURL: "https://x/a.png", Caption: "A diagram"}, "A diagram"},
		{"picture falls back to url", SectionInput{SectionType: SectionPicture, MediaURL: "https://x/a.png"}, "https://x/a.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProjectText([]SectionInput{tc.input}); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestProjectText_SkipsEmptyFragments(t *testing.T) {
	got := ProjectText([]SectionInput{
		{SectionType: SectionParagraph, Position: 0, Header: "Only header"},
		{SectionType: SectionParagraph, Position: 1, Text: "Only text"},
	})
	want := "Only header\n\nOnly text"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestProjectText_Deterministic(t *testing.T) {
	sections := []SectionInput{
		{SectionType: SectionParagraph, Position: 1, Header: "H", Text: "T"},
		{SectionType: SectionSnippet, Position: 0, Code: "a", Language: "go"},
		{SectionType: SectionWarning, Position: 2, Text: "w"},
	}
	first := ProjectText(sections)
	for i := 0; i < 5; i++ {
		if got := ProjectText(sections); got != first {
			t.Fatalf("projection not deterministic: %q vs %q", first, got)
		}
	}
}

func TestProjectText_Empty(t *testing.T) {
	if got := ProjectText(nil); got != "" {
		t.Errorf("expected empty projection, got %q", got)
	}
}
