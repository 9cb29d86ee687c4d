package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyToggle KeyName = iota // Opens the console panel
	KeyClose                 // Closes the panel, keeping the log
	KeyQuit
	KeySubmit
	KeyComplete // Accepts the autocomplete suggestion

	// History recall
	KeyHistoryUp
	KeyHistoryDown

	// Log scrolling
	KeyPageUp
	KeyPageDown
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"/":      KeyToggle,
	"`":      KeyToggle,
	"esc":    KeyClose,
	"ctrl+c": KeyQuit,
	"enter":  KeySubmit,
	"tab":    KeyComplete,
	"up":     KeyHistoryUp,
	"down":   KeyHistoryDown,
	"pgup":   KeyPageUp,
	"ctrl+u": KeyPageUp,
	"pgdown": KeyPageDown,
	"ctrl+d": KeyPageDown,
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyToggle: key.NewBinding(
		key.WithKeys("/", "`"),
		key.WithHelp("/", "open console"),
	),
	KeyClose: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("^c", "quit"),
	),
	KeySubmit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "run"),
	),
	KeyComplete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	KeyHistoryUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "older"),
	),
	KeyHistoryDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "newer"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup/^u", "scroll up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn/^d", "scroll down"),
	),
}

// Lookup resolves a key message string to its binding name.
func Lookup(s string) (KeyName, bool) {
	name, ok := GlobalKeyStringsMap[s]
	return name, ok
}
