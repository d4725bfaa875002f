package widget

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{0.5, "⯪☆☆☆☆"},
		{1, "★☆☆☆☆"},
		{2.5, "★★⯪☆☆"},
		{3.2, "★★★⯪☆"},
		{4.7, "★★★★⯪"},
		{4.99, "★★★★⯪"},
		{5, "★★★★★"},
		{-1, "☆☆☆☆☆"},
		{7.3, "★★★★★"},
	}

	for _, tt := range tests {
		if got := Stars(tt.rating); got != tt.want {
			t.Errorf("Stars(%v) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestStarsAlwaysFiveSymbols(t *testing.T) {
	for r := -1.0; r <= 6.0; r += 0.1 {
		got := Stars(r)
		if n := utf8.RuneCountInString(got); n != 5 {
			t.Errorf("Stars(%v) = %q has %d symbols, want 5", r, got, n)
		}
		if strings.Count(got, starHalf) > 1 {
			t.Errorf("Stars(%v) = %q has more than one half star", r, got)
		}
	}
}
