package classgen

import "strings"

// NormalizeName converts a JSON key into an exported Go identifier.
//
// ASCII letters are kept and the first letter of every word is upper-cased;
// the rest of a word keeps its casing, so acronyms survive. Digits continue a
// word once something has been written, and are dropped before that so the
// result never starts with a digit. Every other character ends a word.
//
// A key made only of separators normalizes to "". Distinct keys may normalize
// to the same name; Specialize reports that as ErrNameCollision.
func NormalizeName(key string) string {
	var b strings.Builder
	b.Grow(len(key))

	upper := true
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case isASCIILetter(c), isDigit(c) && b.Len() > 0:
			if upper && c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			b.WriteByte(c)
			upper = false
		default:
			upper = true
		}
	}
	return b.String()
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
