package overlay

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// ErrorBanner is the blocking error box. It stays until acknowledged.
type ErrorBanner struct {
	Message string
	// Pending is the number of further errors waiting behind this one.
	Pending int
	width   int
}

// NewErrorBanner creates a banner for message.
func NewErrorBanner(message string, pending int) *ErrorBanner {
	return &ErrorBanner{Message: message, Pending: pending, width: 56}
}

// SetWidth sets the outer width of the rendered box.
func (b *ErrorBanner) SetWidth(width int) {
	b.width = width
}

// Render renders the banner.
func (b *ErrorBanner) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(colorLove).
		Padding(1, 2).
		Width(b.width - 2)

	title := lipgloss.NewStyle().Foreground(colorLove).Bold(true).Render("✗ error")
	body := lipgloss.NewStyle().Foreground(colorText).Render(b.Message)

	hint := "enter/esc/q to dismiss"
	if b.Pending > 0 {
		hint += " · " + lipgloss.NewStyle().Foreground(colorGold).Render(pluralize(b.Pending, "more error", "more errors"))
	}
	return style.Render(title + "\n\n" + body + "\n\n" + lipgloss.NewStyle().Foreground(colorMuted).Render(hint))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
