package ui

import "strings"

// FillHeight pads s with blank lines up to height so the alt-screen renderer
// does not leave stale rows below a short page. The theme background comes
// from OSC 11, so blank cells need no styling.
func FillHeight(s string, height int) string {
	if height <= 0 {
		return s
	}
	n := strings.Count(s, "\n") + 1
	if n >= height {
		return s
	}
	return s + strings.Repeat("\n", height-n)
}
