package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyPrevPage // Key for loading the previous page
	KeyNextPage // Key for loading the next page
	KeyRefresh  // Key for refetching the current page
	KeyDelete   // Key for opening the delete confirmation
	KeyCompose  // Key for composing a message to the targets
	KeyDetail   // Key for viewing the cursor session's details
	KeyMultiSelect
	KeyMark
	KeyClearMarks
	KeyCopyID // Key for copying the cursor session id to the clipboard
	KeyQuit

	// -- Special keybindings, only read inside overlays --

	KeyConfirm
	KeyDismiss
	KeyForceQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":    KeyUp,
	"k":     KeyUp,
	"down":  KeyDown,
	"j":     KeyDown,
	"left":  KeyPrevPage,
	"h":     KeyPrevPage,
	"right": KeyNextPage,
	"l":     KeyNextPage,
	"a":     KeyRefresh,
	"d":     KeyDelete,
	"m":     KeyCompose,
	"M":     KeyDetail,
	"tab":   KeyMultiSelect,
	"e":     KeyMark,
	"E":     KeyClearMarks,
	"c":     KeyCopyID,
	"q":     KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyPrevPage: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev page"),
	),
	KeyNextPage: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next page"),
	),
	KeyRefresh: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "refresh"),
	),
	KeyDelete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	KeyCompose: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "message"),
	),
	KeyDetail: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "details"),
	),
	KeyMultiSelect: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "multi-select"),
	),
	KeyMark: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "mark"),
	),
	KeyClearMarks: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "clear marks"),
	),
	KeyCopyID: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy id"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),

	// -- Special keybindings --

	KeyConfirm: key.NewBinding(
		key.WithKeys("y", "Y", "s", "S"),
		key.WithHelp("y", "confirm"),
	),
	KeyDismiss: key.NewBinding(
		key.WithKeys("q", "esc", "enter"),
		key.WithHelp("enter/esc", "dismiss"),
	),
	KeyForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// FooterKeys is the order keys are listed in the footer and the key reference.
var FooterKeys = []KeyName{
	KeyUp,
	KeyDown,
	KeyPrevPage,
	KeyNextPage,
	KeyRefresh,
	KeyDelete,
	KeyCompose,
	KeyDetail,
	KeyMultiSelect,
	KeyMark,
	KeyClearMarks,
	KeyCopyID,
	KeyQuit,
}

// Lookup returns the action bound to a key string.
func Lookup(s string) (KeyName, bool) {
	k, ok := GlobalKeyStringsMap[s]
	return k, ok
}

// Matches reports whether the key string s triggers name's binding.
func Matches(s string, name KeyName) bool {
	b, ok := GlobalkeyBindings[name]
	if !ok {
		return false
	}
	for _, k := range b.Keys() {
		if k == s {
			return true
		}
	}
	return false
}
