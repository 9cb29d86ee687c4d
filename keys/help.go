package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// HelpCategory organizes key bindings by function
type HelpCategory string

const (
	HelpCategoryInput      HelpCategory = "Input"
	HelpCategoryNavigation HelpCategory = "Navigation"
	HelpCategoryOther      HelpCategory = "Other"
	HelpCategoryUncategory HelpCategory = "Uncategorized" // For keys without categories
)

// categoryOrder is the column order of the full help view.
var categoryOrder = []HelpCategory{HelpCategoryInput, HelpCategoryNavigation, HelpCategoryOther}

// KeyHelpInfo adds extended help information to key bindings
type KeyHelpInfo struct {
	Description string       // Extended description for help text
	Category    HelpCategory // Category for organizing in help screens
}

// KeyHelpMap maps KeyNames to their help information
var KeyHelpMap = map[KeyName]KeyHelpInfo{
	KeySubmit:   {Description: "Run the typed command line", Category: HelpCategoryInput},
	KeyComplete: {Description: "Replace the input with the suggested command", Category: HelpCategoryInput},

	KeyHistoryUp:   {Description: "Recall an older command", Category: HelpCategoryNavigation},
	KeyHistoryDown: {Description: "Recall a newer command", Category: HelpCategoryNavigation},
	KeyPageUp:      {Description: "Scroll the log up", Category: HelpCategoryNavigation},
	KeyPageDown:    {Description: "Scroll the log down", Category: HelpCategoryNavigation},

	KeyToggle: {Description: "Open the console panel", Category: HelpCategoryOther},
	KeyClose:  {Description: "Close the console panel", Category: HelpCategoryOther},
	KeyQuit:   {Description: "Quit the application", Category: HelpCategoryOther},
}

// GetKeyHelp returns the help information for a key
func GetKeyHelp(keyName KeyName) KeyHelpInfo {
	info, exists := KeyHelpMap[keyName]
	if !exists {
		// Return default help for unknown keys
		return KeyHelpInfo{
			Description: "No description",
			Category:    HelpCategoryUncategory,
		}
	}
	return info
}

// GetKeysInCategory returns all key bindings in a given category, in
// KeyName order
func GetKeysInCategory(category HelpCategory) []KeyName {
	var names []KeyName
	for k := KeyToggle; k <= KeyPageDown; k++ {
		if info, ok := KeyHelpMap[k]; ok && info.Category == category {
			names = append(names, k)
		}
	}
	return names
}

// KeyMap exposes the bindings to the bubbles help view. Open selects the
// bindings of the open panel; a closed panel only offers toggle and quit.
type KeyMap struct {
	Open bool
}

func (m KeyMap) ShortHelp() []key.Binding {
	if !m.Open {
		return bindings(KeyToggle, KeyQuit)
	}
	return bindings(KeySubmit, KeyComplete, KeyHistoryUp, KeyHistoryDown, KeyClose)
}

func (m KeyMap) FullHelp() [][]key.Binding {
	if !m.Open {
		return [][]key.Binding{m.ShortHelp()}
	}
	columns := make([][]key.Binding, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		columns = append(columns, bindings(GetKeysInCategory(category)...))
	}
	return columns
}

func bindings(names ...KeyName) []key.Binding {
	out := make([]key.Binding, 0, len(names))
	for _, name := range names {
		out = append(out, GlobalkeyBindings[name])
	}
	return out
}
