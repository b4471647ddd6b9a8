package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PlaceOverlay draws fg over bg with its top-left corner at (x, y). Cells of
// bg outside fg are kept, including their styling.
func PlaceOverlay(x, y int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	fgWidth := 0
	for _, l := range fgLines {
		if w := ansi.StringWidth(l); w > fgWidth {
			fgWidth = w
		}
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	for i, fgLine := range fgLines {
		row := y + i
		for row >= len(bgLines) {
			bgLines = append(bgLines, "")
		}
		bgLine := bgLines[row]
		if w := ansi.StringWidth(bgLine); w < x {
			bgLine += strings.Repeat(" ", x-w)
		}

		left := ansi.Truncate(bgLine, x, "")
		right := ansi.TruncateLeft(bgLine, x+fgWidth, "")
		pad := fgWidth - ansi.StringWidth(fgLine)
		if pad < 0 {
			pad = 0
		}
		bgLines[row] = left + fgLine + strings.Repeat(" ", pad) + "\x1b[0m" + right
	}
	return strings.Join(bgLines, "\n")
}

// PlaceCentered draws fg in the middle of a width x height bg.
func PlaceCentered(width, height int, fg, bg string) string {
	fgW, fgH := 0, strings.Count(fg, "\n")+1
	for _, l := range strings.Split(fg, "\n") {
		if w := ansi.StringWidth(l); w > fgW {
			fgW = w
		}
	}
	return PlaceOverlay((width-fgW)/2, (height-fgH)/2, fg, bg)
}
