package overlay

import (
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationOverlay asks a yes/no question. It is single-step: the caller
// closes it on the next key, whatever that key is.
type ConfirmationOverlay struct {
	Title   string
	Message string
	width   int
}

// NewConfirmationOverlay creates a confirmation dialog.
func NewConfirmationOverlay(title, message string) *ConfirmationOverlay {
	return &ConfirmationOverlay{Title: title, Message: message, width: 44}
}

// SetWidth sets the outer width of the rendered box.
func (c *ConfirmationOverlay) SetWidth(width int) {
	c.width = width
}

// Render renders the confirmation dialog.
func (c *ConfirmationOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorLove).
		Padding(1, 2).
		Width(c.width - 2)

	title := lipgloss.NewStyle().Foreground(colorLove).Bold(true).Render(c.Title)
	body := lipgloss.NewStyle().Foreground(colorText).Render(c.Message)
	hint := lipgloss.NewStyle().Foreground(colorMuted).Render("y confirm · any other key cancels")

	return style.Render(title + "\n\n" + body + "\n\n" + hint)
}
