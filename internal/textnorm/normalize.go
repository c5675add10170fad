// Package textnorm canonicalizes free-text Indonesian administrative
// region names so that strings from different geocoding sources can be
// compared. Normalize is pure and total.
package textnorm

import (
	"strings"
	"unicode"
)

// Leading qualifiers stripped from region names. Multi-word entries
// must come before their single-word prefixes so "daerah khusus
// ibukota jakarta" does not stop at "daerah".
var leadingQualifiers = []string{
	"special capital region of",
	"special region of",
	"daerah khusus ibukota",
	"daerah istimewa",
	"province of",
	"regency of",
	"city of",
	"provinsi",
	"kabupaten",
	"kecamatan",
	"kota",
	"kab",
	"kec",
	"prov",
	// dotted abbreviations arrive as spaced letters after punctuation
	// stripping ("D.K.I." -> "d k i")
	"d k i",
	"d i",
	"dki",
	"di",
}

// Clean lowercases, replaces punctuation with spaces and collapses
// whitespace, keeping administrative qualifiers in place. Comparing
// Clean forms is what separates "kab bandung" from "kota bandung"
// after Normalize has collapsed them to the same string.
func Clean(s string) string {
	s = strings.ToLower(s)

	// Punctuation becomes a space so "kab. bandung" tokenizes cleanly.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalize lowercases, strips administrative qualifiers and
// punctuation, and collapses whitespace. Idempotent: the output is a
// fixed point of the transform.
func Normalize(s string) string {
	s = Clean(s)

	// Strip leading qualifiers repeatedly ("provinsi dki jakarta").
	for {
		stripped := false
		for _, q := range leadingQualifiers {
			if s == q {
				continue
			}
			if strings.HasPrefix(s, q+" ") {
				s = strings.TrimPrefix(s, q+" ")
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return strings.TrimSpace(s)
}
