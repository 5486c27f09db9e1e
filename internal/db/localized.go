package db

import (
	"encoding/json"
	"strings"
)

// LocalizedText is the normalized form of a bilingual field. Both keys are
// always populated once a value passes through Normalize.
type LocalizedText struct {
	EN string `gorm:"column:en" json:"en"`
	PL string `gorm:"column:pl" json:"pl"`
}

// Get returns the text for the requested language, falling back to the
// other locale when the requested one is empty.
func (t LocalizedText) Get(language string) string {
	if strings.EqualFold(language, "pl") {
		if t.PL != "" {
			return t.PL
		}
		return t.EN
	}
	if t.EN != "" {
		return t.EN
	}
	return t.PL
}

// IsEmpty reports whether neither locale carries text.
func (t LocalizedText) IsEmpty() bool {
	return strings.TrimSpace(t.EN) == "" && strings.TrimSpace(t.PL) == ""
}

// TextInput is the boundary representation of a bilingual field: either a
// plain string applied to both locales, or an explicit {en,pl} record.
// Internal code only ever sees the normalized LocalizedText.
type TextInput struct {
	Plain     string
	Localized LocalizedText
	IsPlain   bool
}

// UnmarshalJSON accepts "text" or {"en": ..., "pl": ...}.
func (in *TextInput) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		in.IsPlain = true
		in.Plain = plain
		return nil
	}

	var record LocalizedText
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	in.IsPlain = false
	in.Localized = record
	return nil
}

// MarshalJSON writes the normalized record form.
func (in TextInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.Normalize())
}

// Normalize converts the union into a total locale record: a plain string
// is duplicated into both locales, a partial record is filled from the
// locale that is present.
func (in TextInput) Normalize() LocalizedText {
	if in.IsPlain {
		return LocalizedText{EN: in.Plain, PL: in.Plain}
	}
	out := in.Localized
	if out.EN == "" {
		out.EN = out.PL
	}
	if out.PL == "" {
		out.PL = out.EN
	}
	return out
}
