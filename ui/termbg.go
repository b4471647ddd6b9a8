package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// SetTerminalBackground paints the terminal's default background with the
// dashboard base color via OSC 11, so cells reset by \033[0m keep the theme.
// The returned func restores the terminal's own default via OSC 111. Nothing
// is written when stdout is not a terminal.
func SetTerminalBackground(hexColor string) func() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return func() {}
	}
	return setTermBg(os.Stdout, hexColor)
}

// ThemeBackground is the hex color passed to SetTerminalBackground.
func ThemeBackground() string {
	return string(ColorBase)
}

func setTermBg(w io.Writer, hexColor string) func() {
	if hexColor == "" {
		return func() {}
	}
	fmt.Fprintf(w, "\033]11;%s\033\\", hexColor)

	return func() {
		fmt.Fprint(w, "\033]111\033\\")
	}
}
