package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const inputPrompt = "> "

var ghostStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

// CommandInput is a single-line text input with ghost text: a suggestion
// rendered after what has been typed.
type CommandInput struct {
	input textinput.Model
	ghost string
}

// NewCommandInput creates a focused, empty command input.
func NewCommandInput() *CommandInput {
	ti := textinput.New()
	ti.Prompt = inputPrompt
	ti.Placeholder = "type a command, e.g. help"
	// Ensure no character limit
	ti.CharLimit = 0
	ti.Focus()

	return &CommandInput{input: ti}
}

func (c *CommandInput) Value() string { return c.input.Value() }
func (c *CommandInput) Ghost() string { return c.ghost }

// SetValue replaces the typed text and moves the cursor to the end.
func (c *CommandInput) SetValue(s string) {
	c.input.SetValue(s)
	c.input.CursorEnd()
}

// SetGhost sets the suggestion shown after the typed text. An empty string
// clears it.
func (c *CommandInput) SetGhost(s string) {
	c.ghost = s
}

// Reset clears the typed text and the ghost.
func (c *CommandInput) Reset() {
	c.input.Reset()
	c.ghost = ""
}

func (c *CommandInput) Focus() tea.Cmd { return c.input.Focus() }
func (c *CommandInput) Blur()          { c.input.Blur() }

// SetWidth sets the visible width of the typed text.
func (c *CommandInput) SetWidth(width int) {
	c.input.Width = max(0, width-len(inputPrompt)-1)
}

// Update forwards editing keys to the text input.
func (c *CommandInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// GhostRemainder returns the part of the ghost that is not typed yet. When
// the ghost does not continue the typed text the whole ghost is returned.
func (c *CommandInput) GhostRemainder() string {
	value := c.input.Value()
	if c.ghost == "" {
		return ""
	}
	if len(value) <= len(c.ghost) && strings.EqualFold(c.ghost[:len(value)], value) {
		return c.ghost[len(value):]
	}
	return "  " + c.ghost
}

func (c *CommandInput) View() string {
	remainder := c.GhostRemainder()
	if remainder == "" {
		return c.input.View()
	}
	return c.input.View() + ghostStyle.Render(remainder)
}
