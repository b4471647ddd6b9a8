package overlay

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/webmon/session"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailOverlay_LayoutAndTruncation(t *testing.T) {
	d := NewDetailOverlay(session.Record{
		ID:           "S1",
		UserName:     "  ana  ",
		MachineName:  "ws01",
		ThreadID:     42,
		Instructions: 9876543210,
		Comments:     strings.Repeat("x", 40),
	})

	lines := d.Lines()
	require.Len(t, lines, 8)
	for _, l := range lines {
		assert.Equal(t, 2*(detailLabelWidth+1+detailValueWidth)+3, runewidth.StringWidth(l), "rows have fixed width: %q", l)
	}

	assert.Contains(t, lines[0], "User")
	assert.True(t, strings.Contains(lines[0], " ana |"), "values are trimmed and right aligned: %q", lines[0])
	assert.Contains(t, lines[1], "42")
	assert.Contains(t, lines[4], "9876543210")
	assert.Contains(t, lines[5], "…", "long values are truncated with an ellipsis")

	out := ansi.Strip(d.Render())
	assert.Contains(t, out, "Session S1")
	assert.Contains(t, out, "any key to close")
}

func TestConfirmationOverlay_Render(t *testing.T) {
	c := NewConfirmationOverlay("Disconnect sessions?", "Disconnect 2 sessions?")
	out := ansi.Strip(c.Render())
	assert.Contains(t, out, "Disconnect sessions?")
	assert.Contains(t, out, "Disconnect 2 sessions?")
	assert.Contains(t, out, "y confirm")
}

func TestErrorBanner_Render(t *testing.T) {
	out := ansi.Strip(NewErrorBanner("quota exceeded", 0).Render())
	assert.Contains(t, out, "quota exceeded")
	assert.NotContains(t, out, "more error")

	out = ansi.Strip(NewErrorBanner("list: request failed", 2).Render())
	assert.Contains(t, out, "2 more errors")
	assert.Contains(t, ansi.Strip(NewErrorBanner("x", 1).Render()), "1 more error")
}

func TestOverlaySetWidth(t *testing.T) {
	c := NewConfirmationOverlay("Delete sessions", "Delete S1?")
	c.SetWidth(40)
	assert.Equal(t, 40, lipgloss.Width(c.Render()))

	b := NewErrorBanner("list: request failed", 0)
	b.SetWidth(36)
	assert.Equal(t, 36, lipgloss.Width(b.Render()))

	m := NewComposeOverlay("Message to S1")
	m.SetWidth(60)
	assert.Equal(t, 60, lipgloss.Width(m.Render()))
}

func TestPlaceOverlay(t *testing.T) {
	bg := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")
	out := ansi.Strip(PlaceOverlay(2, 1, "ab\ncd", bg))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "..ab......", lines[1])
	assert.Equal(t, "..cd......", lines[2])
}

func TestPlaceOverlay_ExtendsShortBackground(t *testing.T) {
	out := ansi.Strip(PlaceOverlay(3, 1, "xy", "ab"))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "   xy", lines[1])
}

func TestPlaceCentered(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(" ", 10)+"\n", 4) + strings.Repeat(" ", 10)
	out := ansi.Strip(PlaceCentered(10, 5, "XX", bg))
	lines := strings.Split(out, "\n")
	assert.Equal(t, "    XX    ", lines[2])
}

func TestToastManager_ExpiresAndDeduplicates(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := NewToastManager()
	tm.now = func() time.Time { return now }

	id1 := tm.Success("deleted 1 session")
	id2 := tm.Success("deleted 1 session")
	assert.Equal(t, id1, id2, "identical toast is extended, not duplicated")
	tm.Info("copied S1")
	assert.Equal(t, 2, tm.Len())

	out := ansi.Strip(tm.View())
	assert.Contains(t, out, "deleted 1 session")
	assert.Contains(t, out, "copied S1")

	now = now.Add(SuccessDismissAfter + time.Millisecond)
	tm.Tick()
	assert.False(t, tm.HasActiveToasts())
	assert.Empty(t, tm.View())
}

func TestToastManager_Cap(t *testing.T) {
	tm := NewToastManager()
	for i := 0; i < MaxToasts+2; i++ {
		tm.Info(strings.Repeat("m", i+1))
	}
	assert.Equal(t, MaxToasts, tm.Len())
}

func TestToastManager_Position(t *testing.T) {
	tm := NewToastManager()
	tm.Success("ok")
	x, y := tm.Position(100)
	assert.Equal(t, 1, y)
	assert.Equal(t, 100-lipgloss.Width(tm.View())-1, x)
	assert.Less(t, x, 100-MinToastWidth)
}
