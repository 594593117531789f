package render

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/width"
)

// RuneWidth returns the number of terminal columns r occupies.
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// TextWidth returns the number of terminal columns s occupies.
func TextWidth(s string) int {
	n := 0
	for _, r := range s {
		n += RuneWidth(r)
	}
	return n
}

// drawText writes s starting at column x and returns the column after it.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += RuneWidth(r)
	}
	return x
}
