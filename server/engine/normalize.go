package engine

import (
	"strings"
	"unicode"
)

// Normalize lowercases raw message text, strips control characters and
// collapses runs of whitespace. Accents, digits, "r$" and the separators
// used by dates and amounts (",", ".", "/", "-") are preserved: the
// dictionaries are accent-sensitive and the extractors depend on them.
func Normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	space := false
	for _, r := range lowered {
		switch {
		case unicode.IsControl(r):
			// dropped
		case unicode.IsSpace(r):
			if !space {
				b.WriteRune(' ')
				space = true
			}
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return strings.TrimSpace(b.String())
}
