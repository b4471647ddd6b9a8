package app

import (
	"github.com/kastheco/webmon/keys"
	"github.com/kastheco/webmon/log"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress is the entry point for every key. Ticks that are already
// pending are handled before the key; when that starts a remote call, or one
// is already running, the key waits until the call completes.
func (m *home) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if keys.Matches(msg.String(), keys.KeyForceQuit) {
		return tea.Quit
	}
	if m.inflight || len(m.deferred) > 0 {
		m.deferred = append(m.deferred, msg)
		return nil
	}
	if cmd := m.runPendingTicks(); cmd != nil {
		m.deferred = append(m.deferred, msg)
		return cmd
	}
	return m.handleKey(msg)
}

// handleKey routes a key to the open modal, else the registry when no banner
// is showing, else the banner.
func (m *home) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.modal != nil {
		return m.handleModalKey(msg)
	}
	if m.banners.active() {
		if keys.Matches(msg.String(), keys.KeyDismiss) {
			m.banners.ack()
		}
		return nil
	}

	name, ok := keys.Lookup(msg.String())
	if !ok {
		return nil
	}
	cmd := m.handleRegistryKey(name)
	if name == keys.KeyQuit {
		return cmd
	}
	return tea.Batch(cmd, m.keydownCallback(name))
}

func (m *home) handleRegistryKey(name keys.KeyName) tea.Cmd {
	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyUp:
		m.registry.Prev()
	case keys.KeyDown:
		m.registry.Next()
	case keys.KeyPrevPage:
		prev := m.registry.Page()
		m.registry.PrevPage()
		return m.fetchPage(prev)
	case keys.KeyNextPage:
		prev := m.registry.Page()
		m.registry.NextPage()
		return m.fetchPage(prev)
	case keys.KeyRefresh:
		return m.refresh()
	case keys.KeyMultiSelect:
		m.registry.ToggleMultiSelect()
	case keys.KeyMark:
		m.registry.ToggleCurrentMark()
	case keys.KeyClearMarks:
		m.registry.ClearMarks()
	case keys.KeyCopyID:
		m.copySelectedID()
	case keys.KeyDelete, keys.KeyCompose, keys.KeyDetail:
		m.openModal(name)
	}
	return nil
}

// openModal opens the modal for name on the cursor record. It does nothing
// on an empty page.
func (m *home) openModal(name keys.KeyName) {
	cursor, ok := m.registry.Selected()
	if !ok {
		return
	}
	switch name {
	case keys.KeyDelete:
		m.modal = newConfirmDeleteModal(m.registry.EffectiveTargets(), cursor)
	case keys.KeyCompose:
		m.modal = newComposeModal(m.registry.EffectiveTargets(), cursor)
	case keys.KeyDetail:
		m.modal = newDetailModal(cursor)
	}
	if m.modal != nil {
		m.modal.resize(m.width)
	}
}

func (m *home) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	switch md := m.modal.(type) {
	case *confirmDeleteModal:
		m.modal = nil
		if !keys.Matches(msg.String(), keys.KeyConfirm) {
			return nil
		}
		return m.deleteSessions(md.targets)
	case *detailModal:
		m.modal = nil
		return nil
	case *composeModal:
		if !md.overlay.HandleKeyPress(msg) {
			return nil
		}
		m.modal = nil
		if md.overlay.Canceled {
			log.InfoLog.Printf("message to %s canceled", describeTargets(md.targets))
			return nil
		}
		text := md.overlay.Value()
		md.overlay.Clear()
		return m.sendMessage(md.targets, text)
	}
	return nil
}

func (m *home) handleQuit() tea.Cmd {
	log.InfoLog.Printf("quitting")
	return tea.Quit
}
