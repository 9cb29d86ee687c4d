package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"devconsole/cmd"
	"devconsole/cmd/commands"
	"devconsole/config"
	"devconsole/keys"
	"devconsole/log"
	"devconsole/ui"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
)

// Registry is the command registry the frontend drives. *cmd.Registry
// satisfies it.
type Registry interface {
	Register(owner cmd.Owner)
	Unregister(owner cmd.Owner)
	Execute(line string)
	NearestCommand(prefix string) (name string, params []string, ok bool)
	Commands() []*cmd.Command
	History() []string
	HistoryLen() int
	HistoryAt(index int) (string, bool)
}

// Run is the main entrypoint into the interactive console.
func Run(ctx context.Context, registry Registry, hub *log.Hub, cfg *config.Config) error {
	m := newHome(registry, hub, cfg)
	defer m.shutdown()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	// Entries published outside the update loop are picked up on the next
	// flush message.
	m.notify = func() { p.Send(logFlushMsg{}) }

	_, err := p.Run()
	return err
}

type state int

const (
	stateClosed state = iota
	// stateOpen is the state when the console panel takes input.
	stateOpen
)

// logFlushMsg asks the model to move pending log entries into the view.
type logFlushMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#36CFC9"))
	ruleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C"))
	closedHint = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type home struct {
	// -- Storage and Configuration --

	registry Registry
	hub      *log.Hub
	// threshold is the input length that must be exceeded before a
	// suggestion is shown
	threshold int

	// -- State --

	state state
	// pending holds entries published since the last flush
	pending   []log.Entry
	pendingMu sync.Mutex
	// notify wakes the update loop after an entry arrives; nil in tests
	notify      func()
	unsubscribe func()
	closeOnce   sync.Once

	width, height int

	// -- UI Components --

	logView *ui.LogView
	input   *ui.CommandInput
	history *ui.HistoryNavigator
	help    help.Model
	console *commands.Console
}

func newHome(registry Registry, hub *log.Hub, cfg *config.Config) *home {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &home{
		registry:  registry,
		hub:       hub,
		threshold: cfg.AutocompleteThreshold,
		state:     stateClosed,
		logView:   ui.NewLogView(cfg.LogCapacity),
		input:     ui.NewCommandInput(),
		history:   ui.NewHistoryNavigator(registry),
		help:      help.New(),
	}
	if cfg.StartOpen {
		m.state = stateOpen
	} else {
		m.input.Blur()
	}

	m.unsubscribe = hub.Subscribe(m.receive)

	m.console = commands.NewConsole(hub, registry, cfg.HelpPageSize, commands.ConsoleHandlers{
		OnClear:  m.clearLog,
		Snapshot: m.logView.Lines,
	})
	registry.Register(m.console)

	return m
}

// receive is the hub subscriber. It may be called from any goroutine.
func (m *home) receive(e log.Entry) {
	m.pendingMu.Lock()
	m.pending = append(m.pending, e)
	m.pendingMu.Unlock()

	if m.notify != nil {
		go m.notify()
	}
}

// flush moves pending entries into the log view.
func (m *home) flush() {
	m.pendingMu.Lock()
	pending := m.pending
	m.pending = nil
	m.pendingMu.Unlock()

	for _, e := range pending {
		m.logView.Append(e)
	}
}

func (m *home) clearLog() {
	m.pendingMu.Lock()
	m.pending = nil
	m.pendingMu.Unlock()
	m.logView.Clear()
}

// shutdown unregisters the built-in commands and stops listening to the
// hub. It is safe to call more than once.
func (m *home) shutdown() {
	m.closeOnce.Do(func() {
		m.registry.Unregister(m.console)
		m.unsubscribe()
	})
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	// Title, rule, input and footer take one row each
	logHeight := max(1, msg.Height-4)
	m.logView.SetSize(msg.Width, logHeight)
	m.input.SetWidth(msg.Width)
}

func (m *home) Init() tea.Cmd {
	if m.state == stateOpen {
		return m.input.Focus()
	}
	return nil
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case logFlushMsg:
		m.flush()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.state == stateOpen {
		return m, m.input.Update(msg)
	}
	return m, nil
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	m.shutdown()
	return m, tea.Quit
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (mod tea.Model, cmd tea.Cmd) {
	name, ok := keys.Lookup(msg.String())
	if ok && name == keys.KeyQuit {
		return m.handleQuit()
	}

	if m.state == stateClosed {
		if ok && name == keys.KeyToggle {
			m.state = stateOpen
			m.flush()
			return m, m.input.Focus()
		}
		return m, nil
	}

	if ok {
		switch name {
		case keys.KeyClose:
			m.state = stateClosed
			m.input.Blur()
			return m, nil
		case keys.KeySubmit:
			m.submit()
			return m, nil
		case keys.KeyComplete:
			m.complete()
			return m, nil
		case keys.KeyHistoryUp:
			if line, found := m.history.Up(); found {
				m.input.SetValue(line)
				m.refreshGhost()
			}
			return m, nil
		case keys.KeyHistoryDown:
			if line, found := m.history.Down(); found {
				m.input.SetValue(line)
				m.refreshGhost()
			}
			return m, nil
		case keys.KeyPageUp:
			m.logView.PageUp()
			return m, nil
		case keys.KeyPageDown:
			m.logView.PageDown()
			return m, nil
		}
	}

	// Anything else edits the input, including the toggle key.
	cmd = m.input.Update(msg)
	if m.input.Value() == "" {
		m.history.Reset()
	}
	m.refreshGhost()
	return m, cmd
}

// submit echoes the typed line to the log and executes it.
func (m *home) submit() {
	line := m.input.Value()
	m.input.Reset()
	m.history.Reset()
	if strings.TrimSpace(line) == "" {
		return
	}

	m.hub.Infof("> %s", line)
	m.flush()
	m.registry.Execute(line)
	m.flush()
}

// complete replaces the input with the suggested command name.
func (m *home) complete() {
	value := m.input.Value()
	if utf8.RuneCountInString(value) <= m.threshold {
		return
	}
	name, _, found := m.registry.NearestCommand(value)
	if !found {
		return
	}
	m.input.SetValue(name)
	m.refreshGhost()
}

// refreshGhost updates the suggestion for the current input.
func (m *home) refreshGhost() {
	value := m.input.Value()
	if utf8.RuneCountInString(value) <= m.threshold {
		m.input.SetGhost("")
		return
	}

	name, params, found := m.registry.NearestCommand(value)
	if !found {
		m.input.SetGhost("")
		return
	}

	var sb strings.Builder
	sb.WriteString(name)
	for _, p := range params {
		sb.WriteString(fmt.Sprintf(" <%s>", p))
	}
	m.input.SetGhost(sb.String())
}

// statusLine renders the title with the command and history counts pushed
// to the right edge.
func (m *home) statusLine() string {
	left := titleStyle.Render("DEV CONSOLE")
	right := infoStyle.Render(fmt.Sprintf("%d commands · history %d", len(m.registry.Commands()), m.registry.HistoryLen()))

	gap := m.width - ansi.PrintableRuneWidth(left) - ansi.PrintableRuneWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *home) View() string {
	footer := m.help.View(keys.KeyMap{Open: m.state == stateOpen})

	if m.state == stateClosed {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			closedHint.Render("console closed"),
			footer,
		)
	}

	rule := ruleStyle.Render(strings.Repeat("─", max(0, m.width)))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.statusLine(),
		m.logView.View(),
		rule,
		m.input.View(),
		footer,
	)
}
