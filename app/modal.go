package app

import (
	"fmt"

	"github.com/kastheco/webmon/session"
	"github.com/kastheco/webmon/ui"
	"github.com/kastheco/webmon/ui/overlay"
)

// modal is one of confirmDeleteModal, detailModal or composeModal. At most
// one is open at a time.
type modal interface {
	render() string
	menuState() ui.MenuState
	// resize fits the box to a screen width columns wide.
	resize(width int)
}

const (
	confirmBoxWidth = 44
	composeBoxWidth = 64
	bannerBoxWidth  = 56
	minBoxWidth     = 30
)

// boxWidth is want, narrowed to leave a two column margin on each side of a
// screen that is too small for it.
func boxWidth(screen, want int) int {
	if screen <= 0 {
		return want
	}
	return max(minBoxWidth, min(want, screen-4))
}

// confirmDeleteModal asks before deleting targets. The targets are fixed
// when the modal opens.
type confirmDeleteModal struct {
	targets []string
	overlay *overlay.ConfirmationOverlay
}

func newConfirmDeleteModal(targets []string, cursor session.Record) *confirmDeleteModal {
	msg := fmt.Sprintf("Delete session %s (%s)?", cursor.ID, cursor.Title())
	if len(targets) != 1 || targets[0] != cursor.ID {
		msg = fmt.Sprintf("Delete %s?", describeTargets(targets))
	}
	return &confirmDeleteModal{
		targets: targets,
		overlay: overlay.NewConfirmationOverlay("Delete sessions", msg),
	}
}

func (c *confirmDeleteModal) render() string          { return c.overlay.Render() }
func (c *confirmDeleteModal) menuState() ui.MenuState { return ui.StateConfirm }
func (c *confirmDeleteModal) resize(width int)        { c.overlay.SetWidth(boxWidth(width, confirmBoxWidth)) }

// detailModal shows one record; any key closes it.
type detailModal struct {
	overlay *overlay.DetailOverlay
}

func newDetailModal(r session.Record) *detailModal {
	return &detailModal{overlay: overlay.NewDetailOverlay(r)}
}

func (d *detailModal) render() string          { return d.overlay.Render() }
func (d *detailModal) menuState() ui.MenuState { return ui.StateDetail }

// The detail columns have a fixed width.
func (d *detailModal) resize(int) {}

// composeModal collects a message for targets.
type composeModal struct {
	targets []string
	overlay *overlay.ComposeOverlay
}

func newComposeModal(targets []string, cursor session.Record) *composeModal {
	title := "Message to " + cursor.Title()
	if len(targets) != 1 || targets[0] != cursor.ID {
		title = "Message to " + describeTargets(targets)
	}
	return &composeModal{targets: targets, overlay: overlay.NewComposeOverlay(title)}
}

func (c *composeModal) render() string          { return c.overlay.Render() }
func (c *composeModal) menuState() ui.MenuState { return ui.StateCompose }
func (c *composeModal) resize(width int)        { c.overlay.SetWidth(boxWidth(width, composeBoxWidth)) }
