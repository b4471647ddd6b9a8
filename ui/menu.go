package ui

import (
	"strings"

	"github.com/kastheco/webmon/keys"

	"github.com/charmbracelet/lipgloss"
)

var keyStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

var descStyle = lipgloss.NewStyle().Foreground(ColorMuted)

var sepStyle = lipgloss.NewStyle().Foreground(ColorOverlay)

var actionGroupStyle = lipgloss.NewStyle().Foreground(ColorRose)

var separator = " • "
var verticalSeparator = " │ "

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateDefault MenuState = iota
	StateEmpty
	StateConfirm
	StateDetail
	StateCompose
	StateBanner
)

type menuGroup struct {
	options []keys.KeyName
	action  bool
}

var (
	navGroup    = menuGroup{options: []keys.KeyName{keys.KeyUp, keys.KeyDown, keys.KeyPrevPage, keys.KeyNextPage}}
	actionGroup = menuGroup{options: []keys.KeyName{keys.KeyDelete, keys.KeyCompose, keys.KeyDetail, keys.KeyCopyID}, action: true}
	markGroup   = menuGroup{options: []keys.KeyName{keys.KeyMultiSelect, keys.KeyMark, keys.KeyClearMarks}}
	systemGroup = menuGroup{options: []keys.KeyName{keys.KeyRefresh, keys.KeyQuit}}
)

// Menu is the footer listing the keys that apply in the current state.
type Menu struct {
	groups []menuGroup
	width  int
	state  MenuState
	hint   string

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

func NewMenu() *Menu {
	m := &Menu{state: StateEmpty, keyDown: -1}
	m.updateOptions()
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	if m.state == state {
		return
	}
	m.state = state
	m.updateOptions()
}

func (m *Menu) State() MenuState {
	return m.state
}

func (m *Menu) updateOptions() {
	m.hint = ""
	switch m.state {
	case StateDefault:
		m.groups = []menuGroup{navGroup, actionGroup, markGroup, systemGroup}
	case StateEmpty:
		m.groups = []menuGroup{{options: []keys.KeyName{keys.KeyPrevPage, keys.KeyNextPage, keys.KeyRefresh, keys.KeyQuit}}}
	case StateConfirm:
		m.groups = []menuGroup{{options: []keys.KeyName{keys.KeyConfirm}, action: true}}
		m.hint = "any other key cancels"
	case StateDetail:
		m.groups = nil
		m.hint = "any key to close"
	case StateCompose:
		m.groups = nil
		m.hint = "type a message · enter send · esc cancel"
	case StateBanner:
		m.groups = []menuGroup{{options: []keys.KeyName{keys.KeyDismiss}, action: true}}
	}
}

// SetSize sets the width of the window. The menu is centered within it.
func (m *Menu) SetSize(width int) {
	m.width = width
}

func (m *Menu) renderKey(k keys.KeyName, action bool) string {
	help := keys.GlobalkeyBindings[k].Help()

	localActionStyle, localKeyStyle, localDescStyle := actionGroupStyle, keyStyle, descStyle
	if m.keyDown == k {
		localActionStyle = localActionStyle.Underline(true)
		localKeyStyle = localKeyStyle.Underline(true)
		localDescStyle = localDescStyle.Underline(true)
	}
	if action {
		return localActionStyle.Render(help.Key + " " + help.Desc)
	}
	return localKeyStyle.Render(help.Key) + descStyle.Render(" ") + localDescStyle.Render(help.Desc)
}

func (m *Menu) String() string {
	var s strings.Builder
	for gi, g := range m.groups {
		if gi > 0 {
			s.WriteString(sepStyle.Render(verticalSeparator))
		}
		for i, k := range g.options {
			if i > 0 {
				s.WriteString(sepStyle.Render(separator))
			}
			s.WriteString(m.renderKey(k, g.action))
		}
	}
	if m.hint != "" {
		if s.Len() > 0 {
			s.WriteString(sepStyle.Render(verticalSeparator))
		}
		s.WriteString(descStyle.Render(m.hint))
	}

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s.String())
}
