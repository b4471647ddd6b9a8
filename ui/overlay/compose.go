package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// ComposeOverlay collects a one-line message. The buffer only grows by
// printable runes and shrinks by backspace; there is no cursor movement.
type ComposeOverlay struct {
	Title    string
	buffer   []rune
	Canceled bool
	width    int
}

// NewComposeOverlay creates an empty compose overlay.
func NewComposeOverlay(title string) *ComposeOverlay {
	return &ComposeOverlay{Title: title, width: 50}
}

// SetWidth sets the outer width of the rendered box.
func (c *ComposeOverlay) SetWidth(width int) {
	c.width = width
}

// HandleKeyPress processes a key press and updates the state accordingly.
// Returns true if the overlay should be closed. Esc clears the buffer.
func (c *ComposeOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, r := range msg.Runes {
			if isPrintable(r) {
				c.buffer = append(c.buffer, r)
			}
		}
		return false
	case tea.KeyBackspace:
		if n := len(c.buffer); n > 0 {
			c.buffer = c.buffer[:n-1]
		}
		return false
	case tea.KeyEsc:
		c.buffer = nil
		c.Canceled = true
		return true
	case tea.KeyEnter:
		return true
	default:
		return false
	}
}

func isPrintable(r rune) bool {
	return r >= 0x20 && r != 0x7f
}

// Value returns the current message text.
func (c *ComposeOverlay) Value() string {
	return string(c.buffer)
}

// Clear empties the buffer.
func (c *ComposeOverlay) Clear() {
	c.buffer = nil
}

// Render renders the compose overlay.
func (c *ComposeOverlay) Render() string {
	w := c.width
	if w < 30 {
		w = 30
	}
	inner := w - 6

	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorIris).
		Padding(1, 2).
		Width(w - 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(colorIris).
		Bold(true).
		MarginBottom(1)

	cursor := lipgloss.NewStyle().Foreground(colorFoam).Render("█")
	text := lipgloss.NewStyle().Foreground(colorText).Render(wordwrap.String(c.Value(), inner-1))

	hint := lipgloss.NewStyle().Foreground(colorMuted).Render("enter send · esc cancel")

	content := titleStyle.Render(c.Title) + "\n"
	content += text + cursor + "\n\n"
	content += hint
	return style.Render(content)
}
