package overlay

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ToastType identifies the kind of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
)

// Display constants.
const (
	InfoDismissAfter    = 3 * time.Second
	SuccessDismissAfter = 3 * time.Second

	// ToastTickInterval is how often the app should send ToastTickMsg while
	// toasts are showing.
	ToastTickInterval = 250 * time.Millisecond

	MinToastWidth = 24
	MaxToastWidth = 60
	MaxToasts     = 4
)

var idCounter atomic.Uint64

// toast is a single non-blocking notification. Failures never become toasts;
// they go to the blocking error banner instead.
type toast struct {
	ID        string
	Type      ToastType
	Message   string
	ExpiresAt time.Time
	Width     int
}

// calcToastWidth is icon (1) + space + message + padding (2) + border (2).
func calcToastWidth(msg string) int {
	return clampInt(1+1+runewidth.StringWidth(msg)+4, MinToastWidth, MaxToastWidth)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToastTickMsg is sent by the app while toasts are active to expire them.
type ToastTickMsg struct{}

// ToastManager manages the collection of active toast notifications.
type ToastManager struct {
	toasts []*toast
	now    func() time.Time
}

// NewToastManager creates an empty ToastManager.
func NewToastManager() *ToastManager {
	return &ToastManager{now: time.Now}
}

// Info creates an informational toast and returns its ID.
func (tm *ToastManager) Info(msg string) string {
	return tm.addToast(ToastInfo, msg, InfoDismissAfter)
}

// Success creates a success toast and returns its ID.
func (tm *ToastManager) Success(msg string) string {
	return tm.addToast(ToastSuccess, msg, SuccessDismissAfter)
}

// HasActiveToasts reports whether any toast is still showing.
func (tm *ToastManager) HasActiveToasts() bool {
	return len(tm.toasts) > 0
}

// Len returns the number of showing toasts.
func (tm *ToastManager) Len() int {
	return len(tm.toasts)
}

func nextID() string {
	return fmt.Sprintf("toast-%d", idCounter.Add(1))
}

// addToast appends a toast, or extends an identical one that is still
// showing, and returns its ID.
func (tm *ToastManager) addToast(typ ToastType, msg string, d time.Duration) string {
	now := tm.now()
	for _, existing := range tm.toasts {
		if existing.Type == typ && existing.Message == msg {
			existing.ExpiresAt = now.Add(d)
			return existing.ID
		}
	}

	for len(tm.toasts) >= MaxToasts {
		tm.toasts = tm.toasts[1:]
	}
	t := &toast{
		ID:        nextID(),
		Type:      typ,
		Message:   msg,
		ExpiresAt: now.Add(d),
		Width:     calcToastWidth(msg),
	}
	tm.toasts = append(tm.toasts, t)
	return t.ID
}

// Tick drops expired toasts.
func (tm *ToastManager) Tick() {
	now := tm.now()
	alive := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Before(t.ExpiresAt) {
			alive = append(alive, t)
		}
	}
	tm.toasts = alive
}

func toastColor(typ ToastType) lipgloss.Color {
	if typ == ToastSuccess {
		return colorFoam
	}
	return colorIris
}

func toastIcon(typ ToastType) string {
	style := lipgloss.NewStyle().Foreground(toastColor(typ))
	if typ == ToastSuccess {
		return style.Render("✓")
	}
	return style.Render("▸")
}

func (tm *ToastManager) renderToast(t *toast) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(toastColor(t.Type)).
		Padding(0, 1).
		Width(t.Width).
		Render(toastIcon(t.Type) + " " + t.Message)
}

// View renders all active toasts stacked vertically, right aligned.
func (tm *ToastManager) View() string {
	if len(tm.toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(tm.toasts))
	for _, t := range tm.toasts {
		rendered = append(rendered, tm.renderToast(t))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// Position returns the top-left cell for the toast stack on a screen of the
// given width: top right corner, one row down.
func (tm *ToastManager) Position(screenWidth int) (int, int) {
	x := screenWidth - lipgloss.Width(tm.View()) - 1
	if x < 0 {
		x = 0
	}
	return x, 1
}
