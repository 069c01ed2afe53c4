package dian

import (
	"strings"
	"unicode"
)

// Digits deja solo los dígitos de s. "900.123.456-7" -> "9001234567".
// Es la forma canónica para comparar NIT contra la parametrización.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripDigits elimina los dígitos ASCII ("FEV-1234" -> "FEV-").
func StripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

// StripLetters elimina las letras ASCII A-Z / a-z ("FEV-1234" -> "-1234").
func StripLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return -1
		}
		return r
	}, s)
}
