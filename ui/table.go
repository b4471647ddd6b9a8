package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kastheco/webmon/session"
	"github.com/muesli/reflow/truncate"
)

type column struct {
	title string
	// weight is the column's share of the width left after the mark column.
	weight int
	value  func(session.Record) string
}

var sessionColumns = []column{
	{"user", 3, func(r session.Record) string { return r.UserName }},
	{"machine", 3, func(r session.Record) string { return r.MachineName }},
	{"program", 3, func(r session.Record) string { return r.Function }},
	{"environment", 2, func(r session.Record) string { return r.Environment }},
	{"connected for", 2, func(r session.Record) string { return r.TimeUp }},
	{"connection", 2, func(r session.Record) string { return r.ThreadType }},
}

const markColumnWidth = 3

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorOverlay)
	headerStyle      = lipgloss.NewStyle().Foreground(ColorIris).Bold(true).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Foreground(ColorText).Padding(0, 1)
	cursorStyle      = lipgloss.NewStyle().Foreground(ColorBase).Background(ColorIris).Padding(0, 1)
	markedStyle      = lipgloss.NewStyle().Foreground(ColorGold).Padding(0, 1)
	markedCursor     = lipgloss.NewStyle().Foreground(ColorBase).Background(ColorGold).Padding(0, 1)
	emptyStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
)

// SessionTable renders one page of sessions with the cursor row highlighted
// and marked rows flagged.
type SessionTable struct {
	width, height int

	records  []session.Record
	cursor   int
	isMarked func(id string) bool
	offset   int
}

// NewSessionTable creates an empty table.
func NewSessionTable() *SessionTable {
	return &SessionTable{isMarked: func(string) bool { return false }}
}

// SetSize sets the space available to the table, borders included.
func (t *SessionTable) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

// SetData replaces the rows, cursor and mark lookup.
func (t *SessionTable) SetData(records []session.Record, cursor int, isMarked func(id string) bool) {
	t.records = records
	t.cursor = cursor
	if isMarked != nil {
		t.isMarked = isMarked
	}
	t.ensureCursorVisible()
}

// visibleRows is the number of data rows that fit: height minus the top,
// header separator and bottom border lines and the header itself.
func (t *SessionTable) visibleRows() int {
	n := t.height - 4
	if n < 1 {
		n = 1
	}
	return n
}

func (t *SessionTable) ensureCursorVisible() {
	if len(t.records) == 0 {
		t.offset = 0
		return
	}
	maxVisible := t.visibleRows()
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+maxVisible {
		t.offset = t.cursor - maxVisible + 1
	}
	maxOffset := len(t.records) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.offset > maxOffset {
		t.offset = maxOffset
	}
}

// columnWidths splits the content width between the columns by weight. Each
// width excludes the one-cell padding on both sides.
func (t *SessionTable) columnWidths() []int {
	// borders: one per column plus the outer edge
	avail := t.width - (len(sessionColumns) + 2) - (markColumnWidth + 2) - 2*len(sessionColumns)
	total := 0
	for _, c := range sessionColumns {
		total += c.weight
	}
	widths := make([]int, len(sessionColumns))
	for i, c := range sessionColumns {
		w := avail * c.weight / total
		if w < 4 {
			w = 4
		}
		widths[i] = w
	}
	return widths
}

func fit(s string, width int) string {
	s = strings.TrimSpace(s)
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// View renders the table.
func (t *SessionTable) View() string {
	if len(t.records) == 0 {
		return lipgloss.Place(t.width, t.height, lipgloss.Center, lipgloss.Center,
			emptyStyle.Render("no active sessions on this page"))
	}

	widths := t.columnWidths()
	headers := make([]string, 0, len(sessionColumns)+1)
	headers = append(headers, "")
	for i, c := range sessionColumns {
		headers = append(headers, fit(c.title, widths[i]))
	}

	end := t.offset + t.visibleRows()
	if end > len(t.records) {
		end = len(t.records)
	}
	visible := t.records[t.offset:end]

	rows := make([][]string, 0, len(visible))
	marked := make([]bool, len(visible))
	for i, r := range visible {
		row := make([]string, 0, len(sessionColumns)+1)
		mark := " "
		if t.isMarked(r.ID) {
			mark = "●"
			marked[i] = true
		}
		row = append(row, mark)
		for ci, c := range sessionColumns {
			row = append(row, fit(c.value(r), widths[ci]))
		}
		rows = append(rows, row)
	}
	cursorRow := t.cursor - t.offset

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = headerStyle
			case row == cursorRow && marked[row]:
				s = markedCursor
			case row == cursorRow:
				s = cursorStyle
			case marked[row]:
				s = markedStyle
			default:
				s = cellStyle
			}
			if col == 0 {
				return s.Width(markColumnWidth + 2)
			}
			return s.Width(widths[col-1] + 2)
		})

	return tbl.Render()
}
