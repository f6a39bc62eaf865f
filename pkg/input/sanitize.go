// Package input turns raw control signals into gauge calls.
//
// A value text field, an "animate" checkbox and a "hidden" checkbox are the
// only controls. Their events are routed to a [Target] by [Controls].
package input

import (
	"strconv"
	"strings"
)

// MaxValue is the largest value SanitizeValue returns.
const MaxValue = 100

// SanitizeValue reduces free-form text to a value in [0, MaxValue]. Every
// character that is not an ASCII digit is dropped; an empty result is 0.
// Digit strings too large to parse clamp to MaxValue.
func SanitizeValue(raw string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Only range errors remain once non-digits are stripped.
		return MaxValue
	}
	return min(n, MaxValue)
}
