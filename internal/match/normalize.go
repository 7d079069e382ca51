package match

import (
	"strings"
	"unicode"
)

// NormalizeName lower-cases s and drops separator runes, so that
// "Motor_Speed", "motor speed" and "MotorSpeed" compare equal.
func NormalizeName(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
