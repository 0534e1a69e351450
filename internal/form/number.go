// Package form holds the input-side rules of the search form: the number
// formatter applied on every keystroke and the constraints checked on submit.
package form

import (
	"regexp"
	"strings"
)

// numberPattern is the shape every formatted number has: digit pairs joined
// by hyphens with an optional trailing single digit. It also admits a
// trailing hyphen ("12-"), which FormatNumber never emits.
var numberPattern = regexp.MustCompile(`^(\d{2}-)*\d{0,2}$`)

// FormatNumber strips every non-digit from raw and regroups the remaining
// digits into pairs joined by '-'. "123456" becomes "12-34-56" and "123"
// becomes "12-3". Applying it to its own output returns the same string.
func FormatNumber(raw string) string {
	digits := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/2)
	for i, r := range digits {
		if i > 0 && i%2 == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsFormattedNumber reports whether s already has the grouped shape.
func IsFormattedNumber(s string) bool {
	return numberPattern.MatchString(s)
}
