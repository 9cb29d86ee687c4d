package app

import (
	"os"
	"strings"
	"testing"
	"time"

	"devconsole/cmd"
	"devconsole/cmd/commands"
	"devconsole/config"
	"devconsole/log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var stamp = time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)

// newTestHome builds an open console with the example commands registered.
func newTestHome(t *testing.T) (*home, *cmd.Registry, *log.Hub) {
	t.Helper()
	hub := log.NewQuietHub()
	hub.SetClock(func() time.Time { return stamp })

	registry := cmd.NewRegistry(cmd.WithLogger(hub))
	cfg := config.DefaultConfig()
	cfg.StartOpen = true

	m := newHome(registry, hub, cfg)
	t.Cleanup(m.shutdown)
	registry.Register(commands.NewExample(hub))

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, registry, hub
}

func typeText(m *home, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *home, k tea.KeyType) tea.Cmd {
	_, c := m.Update(tea.KeyMsg{Type: k})
	return c
}

func logMessages(m *home) []string {
	var out []string
	for _, e := range m.logView.Entries() {
		out = append(out, e.Message)
	}
	return out
}

func TestToggleOpenAndClose(t *testing.T) {
	hub := log.NewQuietHub()
	registry := cmd.NewRegistry(cmd.WithLogger(hub))
	m := newHome(registry, hub, config.DefaultConfig())
	t.Cleanup(m.shutdown)

	assert.Equal(t, stateClosed, m.state)
	assert.Contains(t, m.View(), "console closed")

	typeText(m, "x")
	assert.Empty(t, m.input.Value(), "a closed console ignores typing")

	typeText(m, "/")
	assert.Equal(t, stateOpen, m.state)
	assert.Empty(t, m.input.Value(), "the toggle key is not typed")

	typeText(m, "/")
	assert.Equal(t, "/", m.input.Value(), "an open console types the toggle key")

	press(m, tea.KeyEsc)
	assert.Equal(t, stateClosed, m.state)
}

func TestQuitUnregistersBuiltins(t *testing.T) {
	m, registry, _ := newTestHome(t)
	_, ok := registry.Lookup("commandsall")
	require.True(t, ok)

	c := press(m, tea.KeyCtrlC)
	require.NotNil(t, c)
	assert.Equal(t, tea.QuitMsg{}, c())

	_, ok = registry.Lookup("commandsall")
	assert.False(t, ok)
	_, ok = registry.Lookup("teststring")
	assert.True(t, ok, "other owners stay registered")
}

func TestGhostTextFollowsThreshold(t *testing.T) {
	m, _, _ := newTestHome(t)

	typeText(m, "te")
	assert.Empty(t, m.input.Ghost(), "two characters do not exceed the threshold")

	typeText(m, "s")
	assert.Equal(t, "teststring <str>", m.input.Ghost())

	typeText(m, "ttw")
	assert.Equal(t, "testtwostring <str1> <str2>", m.input.Ghost())

	typeText(m, "zz")
	assert.Empty(t, m.input.Ghost(), "no command matches")

	for range "sttwzz" {
		press(m, tea.KeyBackspace)
	}
	assert.Equal(t, "te", m.input.Value())
	assert.Empty(t, m.input.Ghost())
}

func TestTabCompletes(t *testing.T) {
	m, _, _ := newTestHome(t)

	typeText(m, "comm")
	press(m, tea.KeyTab)
	assert.Equal(t, "commands", m.input.Value())
	assert.Equal(t, "commands <pageIndex>", m.input.Ghost())

	m.input.Reset()
	typeText(m, "co")
	press(m, tea.KeyTab)
	assert.Equal(t, "co", m.input.Value(), "no completion at or below the threshold")
}

func TestSubmitEchoesAndExecutes(t *testing.T) {
	m, registry, _ := newTestHome(t)

	typeText(m, `testString "hello world"`)
	press(m, tea.KeyEnter)

	assert.Empty(t, m.input.Value())
	assert.Equal(t, []string{`> testString "hello world"`, "hello world"}, logMessages(m))
	assert.Equal(t, []string{
		`[09:30:00]  > testString "hello world"`,
		"[09:30:00]  hello world",
	}, m.logView.Lines())
	assert.Equal(t, []string{`testString "hello world"`}, registry.History())
}

func TestSubmitFailureLogsOneError(t *testing.T) {
	m, registry, _ := newTestHome(t)

	typeText(m, "testCalculate 1 2")
	press(m, tea.KeyEnter)

	entries := m.logView.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, log.SeverityError, entries[1].Severity)
	assert.Contains(t, entries[1].Message, cmd.ErrInvalidParameters.Error())
	assert.Empty(t, registry.History())
}

func TestSubmitBlankLineDoesNothing(t *testing.T) {
	m, _, _ := newTestHome(t)

	typeText(m, "   ")
	press(m, tea.KeyEnter)

	assert.Empty(t, m.input.Value())
	assert.Equal(t, 0, m.logView.Len())
}

func TestClearEmptiesLog(t *testing.T) {
	m, _, _ := newTestHome(t)

	typeText(m, "testBool true")
	press(m, tea.KeyEnter)
	require.Equal(t, 2, m.logView.Len())

	typeText(m, "clear")
	press(m, tea.KeyEnter)
	assert.Equal(t, 0, m.logView.Len())
}

func TestHistoryRecall(t *testing.T) {
	m, _, _ := newTestHome(t)

	for _, line := range []string{"testBool true", "testBool false"} {
		typeText(m, line)
		press(m, tea.KeyEnter)
	}

	press(m, tea.KeyUp)
	assert.Equal(t, "testBool false", m.input.Value())
	press(m, tea.KeyUp)
	assert.Equal(t, "testBool true", m.input.Value())
	press(m, tea.KeyUp)
	assert.Equal(t, "testBool true", m.input.Value(), "up stops at the oldest line")
	press(m, tea.KeyDown)
	assert.Equal(t, "testBool false", m.input.Value())
	press(m, tea.KeyDown)
	assert.Equal(t, "testBool false", m.input.Value(), "down stops at the newest line")

	// Clearing the input resets the recall position.
	for range "testBool false" {
		press(m, tea.KeyBackspace)
	}
	assert.Equal(t, -1, m.history.Index())
}

func TestLogPublishedOutsideUpdateIsFlushed(t *testing.T) {
	m, _, hub := newTestHome(t)

	hub.Warningf("from elsewhere")
	assert.Equal(t, 0, m.logView.Len())

	m.Update(logFlushMsg{})
	require.Equal(t, 1, m.logView.Len())
	assert.Equal(t, log.SeverityWarning, m.logView.Entries()[0].Severity)
}

func TestHelpCommandPrintsListing(t *testing.T) {
	m, _, _ := newTestHome(t)

	typeText(m, "help")
	press(m, tea.KeyEnter)

	messages := logMessages(m)
	assert.Contains(t, messages, "Format: 'function parameter1 parameter2'")
	assert.Contains(t, messages, "=======[ HELP COMMAND LIST ]=======")
}

func TestView(t *testing.T) {
	m, _, _ := newTestHome(t)

	typeText(m, "testBool true")
	press(m, tea.KeyEnter)

	view := m.View()
	assert.Contains(t, view, "DEV CONSOLE")
	assert.Contains(t, view, "16 commands · history 1")
	assert.Contains(t, view, "> testBool true")

	first := strings.Split(view, "\n")[0]
	assert.Equal(t, 80, lipgloss.Width(first), "status line spans the window")
}
