package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/webmon/session"
	"github.com/mattn/go-runewidth"
)

const (
	detailLabelWidth = 15
	detailValueWidth = 27
)

type detailRow struct {
	label1, value1 string
	label2, value2 string
}

// DetailOverlay shows every field of one session in two columns.
type DetailOverlay struct {
	record session.Record
}

// NewDetailOverlay creates a read-only detail view of r.
func NewDetailOverlay(r session.Record) *DetailOverlay {
	return &DetailOverlay{record: r}
}

func (d *DetailOverlay) rows() []detailRow {
	r := d.record
	itoa := func(n int64) string { return strconv.FormatInt(n, 10) }
	return []detailRow{
		{"User", r.UserName, "Machine", r.MachineName},
		{"Thread ID", itoa(int64(r.ThreadID)), "Server", r.Server},
		{"Program", r.Function, "Environment", r.Environment},
		{"Date/Time", r.DateTime, "Connected for", r.TimeUp},
		{"Instructions", itoa(r.Instructions), "Instr./sec", itoa(int64(r.InstructionsPS))},
		{"Comments", r.Comments, "Memory", itoa(int64(r.Memory))},
		{"SID", r.SID, "Ctree", itoa(int64(r.CtreeID))},
		{"Connection", r.ThreadType, "Idle time", r.InactiveTime},
	}
}

// fitValue trims, truncates with an ellipsis and right-aligns v to the value column.
func fitValue(v string) string {
	v = runewidth.Truncate(strings.TrimSpace(v), detailValueWidth, "…")
	return runewidth.FillLeft(v, detailValueWidth)
}

func fitLabel(l string) string {
	return runewidth.FillRight(l, detailLabelWidth) + ":"
}

// Lines returns the unstyled detail rows.
func (d *DetailOverlay) Lines() []string {
	rows := d.rows()
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, fmt.Sprintf("%s%s | %s%s",
			fitLabel(row.label1), fitValue(row.value1),
			fitLabel(row.label2), fitValue(row.value2)))
	}
	return out
}

// Render renders the detail view.
func (d *DetailOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorIris).
		Padding(1, 2)

	title := lipgloss.NewStyle().Foreground(colorIris).Bold(true).
		Render("Session " + d.record.ID)
	body := lipgloss.NewStyle().Foreground(colorText).Render(strings.Join(d.Lines(), "\n"))
	hint := lipgloss.NewStyle().Foreground(colorMuted).Render("any key to close")

	return style.Render(title + "\n\n" + body + "\n\n" + hint)
}
