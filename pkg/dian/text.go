package dian

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics descompone en NFD y elimina las marcas no espaciadas (tildes, diéresis).
// "Bogotá D.C." -> "Bogota D.C."; "Ñ" -> "N".
func StripDiacritics(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
