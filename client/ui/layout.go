package ui

import (
	"image"
	"strings"
)

// CenteredRow lays out n boxes of size w by h in a row centered across
// width, with gap pixels between boxes and their top edge at top.
func CenteredRow(n, width, w, h, gap, top int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	left := (width - (n*w + (n-1)*gap)) / 2
	out := make([]image.Rectangle, n)
	for i := range out {
		x := left + i*(w+gap)
		out[i] = image.Rect(x, top, x+w, top+h)
	}
	return out
}

// HitIndex returns the index of the first rectangle containing p, or -1.
func HitIndex(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// Wrap breaks s into lines of at most width runes on word boundaries.
func Wrap(s string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
