package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarData holds the contextual information displayed in the status bar.
type StatusBarData struct {
	Server      string
	Environment string
	Page        uint
	HasNext     bool
	Sessions    int
	Marked      int
	MultiSelect bool
	// Busy is the spinner frame shown while a request is in flight, empty when idle.
	Busy string
}

// StatusBar is the top status bar component.
type StatusBar struct {
	width int
	data  StatusBarData
}

// NewStatusBar creates a new StatusBar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the terminal width for the status bar.
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetData updates the status bar content.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

var statusBarStyle = lipgloss.NewStyle().
	Background(ColorSurface).
	Foreground(ColorText).
	Padding(0, 1)

var statusBarAppNameStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Background(ColorSurface).
	Bold(true)

var statusBarSepStyle = lipgloss.NewStyle().
	Foreground(ColorOverlay).
	Background(ColorSurface)

var statusBarServerStyle = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Background(ColorSurface)

var statusBarTextStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Background(ColorSurface)

var statusBarMutedStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle).
	Background(ColorSurface)

var statusBarMarkStyle = lipgloss.NewStyle().
	Foreground(ColorGold).
	Background(ColorSurface).
	Bold(true)

const statusBarSep = " │ "

func (s *StatusBar) String() string {
	if s.width < 10 {
		return ""
	}

	parts := make([]string, 0, 6)
	parts = append(parts, statusBarAppNameStyle.Render("webmon"))

	if s.data.Server != "" {
		parts = append(parts, statusBarServerStyle.Render(s.data.Server))
	}
	if s.data.Environment != "" {
		parts = append(parts, statusBarTextStyle.Render(s.data.Environment))
	}

	page := fmt.Sprintf("page %d", s.data.Page)
	if s.data.HasNext {
		page += " »"
	}
	parts = append(parts, statusBarMutedStyle.Render(page))
	parts = append(parts, statusBarMutedStyle.Render(pluralize(s.data.Sessions, "session", "sessions")))

	if s.data.MultiSelect || s.data.Marked > 0 {
		label := fmt.Sprintf("%d marked", s.data.Marked)
		if s.data.MultiSelect {
			label = "multi · " + label
		}
		parts = append(parts, statusBarMarkStyle.Render(label))
	}

	if s.data.Busy != "" {
		parts = append(parts, statusBarServerStyle.Render(s.data.Busy))
	}

	sep := statusBarSepStyle.Render(statusBarSep)
	content := strings.Join(parts, sep)

	return statusBarStyle.Width(s.width).MaxHeight(1).Render(content)
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
