// Package coursecode canonicalizes raw course identifiers so that lookups
// and prerequisite references are insensitive to formatting noise such as
// byte-order marks, spacing, punctuation and letter case.
package coursecode

import "strings"

// bom is the UTF-8 encoding of U+FEFF as it appears at the start of files
// saved by some editors.
const bom = "\xEF\xBB\xBF"

// Normalize returns the canonical form of raw: a leading byte-order mark is
// removed, surrounding whitespace is trimmed, every byte that is not an ASCII
// letter or digit is dropped and letters are upper-cased.
//
// The result may be empty. Callers must treat an empty code as invalid.
func Normalize(raw string) string {
	raw = strings.TrimSpace(StripBOM(raw))

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case 'a' <= c && c <= 'z':
			b.WriteByte(c - ('a' - 'A'))
		case 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteByte(c)
		}
		// Everything else, including the bytes of multi-byte runes such as
		// U+00A0, is deleted rather than replaced.
	}
	return b.String()
}

// StripBOM removes one leading UTF-8 byte-order mark from s.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, bom)
}

// Valid reports whether raw normalizes to a non-empty code.
func Valid(raw string) bool {
	return Normalize(raw) != ""
}
