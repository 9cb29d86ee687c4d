package cmd

// DefaultHistoryCapacity is the number of command lines kept when no
// capacity is configured.
const DefaultHistoryCapacity = 6

// History is a bounded FIFO of successfully executed command lines.
type History struct {
	capacity int
	entries  []string
}

// NewHistory creates a history holding at most capacity lines. A
// non-positive capacity falls back to DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity, entries: make([]string, 0, capacity)}
}

// Add appends line, evicting the oldest entry once capacity is exceeded.
func (h *History) Add(line string) {
	h.entries = append(h.entries, line)
	if len(h.entries) > h.capacity {
		h.entries = append(h.entries[:0], h.entries[len(h.entries)-h.capacity:]...)
	}
}

// Len returns the number of stored lines.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of stored lines.
func (h *History) Capacity() int {
	return h.capacity
}

// At returns the line index steps back from the newest; At(0) is the most
// recent command.
func (h *History) At(index int) (string, bool) {
	if index < 0 || index >= len(h.entries) {
		return "", false
	}
	return h.entries[len(h.entries)-1-index], true
}

// Entries returns a copy of the stored lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
