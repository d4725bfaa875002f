package widget

import "strings"

const (
	starFull  = "★"
	starHalf  = "⯪"
	starEmpty = "☆"
)

// Stars renders a rating in [0,5] as exactly five symbols: floor(r) full
// stars, one half star if r has a fractional remainder, and empty stars
// for the rest. Out-of-range inputs are clamped.
func Stars(rating float64) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	full := int(rating)
	half := 0
	if rating > float64(full) {
		half = 1
	}
	empty := 5 - full - half

	var sb strings.Builder
	sb.WriteString(strings.Repeat(starFull, full))
	sb.WriteString(strings.Repeat(starHalf, half))
	sb.WriteString(strings.Repeat(starEmpty, empty))
	return sb.String()
}
