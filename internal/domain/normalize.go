package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerCaser = cases.Lower(language.Und)

// NormalizeText composes Unicode (NFC) and trims surrounding whitespace.
// Korean input pasted from some keyboards arrives decomposed.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// NormalizeValue canonicalises an attribute or label value: NFC, trimmed, lower case,
// inner whitespace and hyphens collapsed to underscores ("Leather Jacket" -> "leather_jacket")
func NormalizeValue(s string) string {
	s = lowerCaser.String(NormalizeText(s))
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), "_")
}

// Normalize returns a copy with every field passed through NormalizeValue
func (a Attributes) Normalize() Attributes {
	return Attributes{
		Gender:    NormalizeValue(a.Gender),
		Color:     NormalizeValue(a.Color),
		Style:     NormalizeValue(a.Style),
		PriceTier: NormalizeValue(a.PriceTier),
	}
}
