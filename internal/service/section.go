package service

import (
	"go-wiki-backend/internal/data"
	"sort"
)

// SectionType tags one structured content block. The set is closed: adding a
// type means one new constant plus one entry in the validator table.
type SectionType string

const (
	SectionParagraph SectionType = "paragraph"
	SectionPicture   SectionType = "picture"
	SectionSnippet   SectionType = "snippet"
	SectionInfo      SectionType = "info"
	SectionWarning   SectionType = "warning"
	SectionError     SectionType = "error"
)

// SectionInput is a candidate section as supplied by the caller. Empty
// strings mean the field is absent.
type SectionInput struct {
	SectionType SectionType `json:"section_type"`
	Position    int         `json:"position"`
	Header      string      `json:"header,omitempty"`
	Text        string      `json:"text,omitempty"`
	MediaURL    string      `json:"media_url,omitempty"`
	Caption     string      `json:"caption,omitempty"`
	Code        string      `json:"code,omitempty"`
	Language    string      `json:"language,omitempty"`
}

// sectionValidators holds one structural check per section type.
var sectionValidators = map[SectionType]func(SectionInput) *ValidationError{
	SectionParagraph: func(in SectionInput) *ValidationError {
		if in.Header == "" && in.Text == "" {
			return &ValidationError{SectionType: in.SectionType, Field: "header or text", Position: in.Position}
		}
		return nil
	},
	SectionPicture: func(in SectionInput) *ValidationError {
		if in.MediaURL == "" {
			return &ValidationError{SectionType: in.SectionType, Field: "media_url", Position: in.Position}
		}
		return nil
	},
	SectionSnippet: func(in SectionInput) *ValidationError {
		if in.Code == "" {
			return &ValidationError{SectionType: in.SectionType, Field: "code", Position: in.Position}
		}
		if in.Language == "" {
			return &ValidationError{SectionType: in.SectionType, Field: "language", Position: in.Position}
		}
		return nil
	},
	SectionInfo:    requireText,
	SectionWarning: requireText,
	SectionError:   requireText,
}

func requireText(in SectionInput) *ValidationError {
	if in.Text == "" {
		return &ValidationError{SectionType: in.SectionType, Field: "text", Position: in.Position}
	}
	return nil
}

// ValidateSection checks one candidate section. Pure: it must run before any
// persistence mutation.
func ValidateSection(in SectionInput) error {
	if in.Position < 0 {
		return &ValidationError{SectionType: in.SectionType, Field: "position", Position: in.Position}
	}
	validate, ok := sectionValidators[in.SectionType]
	if !ok {
		return &ValidationError{SectionType: in.SectionType, Field: "section_type", Position: in.Position}
	}
	if verr := validate(in); verr != nil {
		return verr
	}
	return nil
}

// ValidateSections checks every candidate section, failing on the first
// invalid one so the whole write can be rejected with nothing persisted.
func ValidateSections(ins []SectionInput) error {
	for _, in := range ins {
		if err := ValidateSection(in); err != nil {
			return err
		}
	}
	return nil
}

// orderedSections returns a copy sorted by ascending caller-supplied
// position. Ties keep their relative order.
func orderedSections(ins []SectionInput) []SectionInput {
	ordered := make([]SectionInput, len(ins))
	copy(ordered, ins)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	return ordered
}

// sectionRows converts validated inputs, already in final order, to fresh
// storage rows. Positions are left to the replacer, which renumbers 0..N-1.
func sectionRows(ins []SectionInput) []*data.Section {
	rows := make([]*data.Section, 0, len(ins))
	for _, in := range ins {
		rows = append(rows, &data.Section{
			SectionType: string(in.SectionType),
			Header:      optional(in.Header),
			Text:        optional(in.Text),
			MediaURL:    optional(in.MediaURL),
			Caption:     optional(in.Caption),
			Code:        optional(in.Code),
			Language:    optional(in.Language),
		})
	}
	return rows
}

// sectionInputs converts stored rows back to the input shape the projector
// and renderer operate on.
func sectionInputs(rows []*data.Section) []SectionInput {
	ins := make([]SectionInput, 0, len(rows))
	for _, row := range rows {
		ins = append(ins, SectionInput{
			SectionType: SectionType(row.SectionType),
			Position:    row.Position,
			Header:      deref(row.Header),
			Text:        deref(row.Text),
			MediaURL:    deref(row.MediaURL),
			Caption:     deref(row.Caption),
			Code:        deref(row.Code),
			Language:    deref(row.Language),
		})
	}
	return ins
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
