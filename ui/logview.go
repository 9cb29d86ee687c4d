package ui

import (
	"strings"

	"devconsole/log"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// DefaultLogCapacity is the number of entries a log view keeps.
const DefaultLogCapacity = 75

var (
	normalLogStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})
	warningLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCC00"))
	errorLogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
)

func severityStyle(s log.Severity) lipgloss.Style {
	switch s {
	case log.SeverityWarning:
		return warningLogStyle
	case log.SeverityError:
		return errorLogStyle
	default:
		return normalLogStyle
	}
}

// LogView shows the most recent console entries, oldest first, in a
// scrollable viewport. Entries past the capacity are evicted from the front.
type LogView struct {
	capacity int
	entries  []log.Entry
	viewport viewport.Model
	width    int
	height   int
}

// NewLogView creates an empty log view. A non-positive capacity falls back
// to DefaultLogCapacity.
func NewLogView(capacity int) *LogView {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &LogView{
		capacity: capacity,
		entries:  make([]log.Entry, 0, capacity),
		viewport: viewport.New(0, 0),
	}
}

// Append adds an entry and scrolls to the bottom.
func (l *LogView) Append(e log.Entry) {
	if len(l.entries) >= l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, e)
	l.refresh()
	l.viewport.GotoBottom()
}

// Clear removes every entry.
func (l *LogView) Clear() {
	l.entries = l.entries[:0]
	l.refresh()
}

func (l *LogView) Len() int      { return len(l.entries) }
func (l *LogView) Capacity() int { return l.capacity }

// Entries returns a copy of the held entries, oldest first.
func (l *LogView) Entries() []log.Entry {
	out := make([]log.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lines returns the held entries as unstyled text, oldest first.
func (l *LogView) Lines() []string {
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = e.String()
	}
	return lines
}

// SetSize sets the visible area and re-wraps the entries.
func (l *LogView) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.viewport.Width = width
	l.viewport.Height = height
	l.refresh()
	l.viewport.GotoBottom()
}

// PageUp scrolls one page towards older entries.
func (l *LogView) PageUp() {
	l.viewport.ViewUp()
}

// PageDown scrolls one page towards newer entries.
func (l *LogView) PageDown() {
	l.viewport.ViewDown()
}

// AtBottom reports whether the newest entry is in view.
func (l *LogView) AtBottom() bool {
	return l.viewport.AtBottom()
}

func (l *LogView) View() string {
	return l.viewport.View()
}

func (l *LogView) refresh() {
	rendered := make([]string, len(l.entries))
	for i, e := range l.entries {
		text := e.String()
		if l.width > 0 {
			// Break at spaces first, then hard-wrap words that are still too long.
			text = wrap.String(wordwrap.String(text, l.width), l.width)
		}
		rendered[i] = severityStyle(e.Severity).Render(text)
	}
	l.viewport.SetContent(strings.Join(rendered, "\n"))
}
