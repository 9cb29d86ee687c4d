package ui

// HistorySource is the command history the navigator walks. Index 0 is the
// most recent line.
type HistorySource interface {
	HistoryLen() int
	HistoryAt(index int) (string, bool)
}

// HistoryNavigator recalls previous command lines with up and down. It
// starts before the newest entry, at index -1.
type HistoryNavigator struct {
	source HistorySource
	index  int
}

func NewHistoryNavigator(source HistorySource) *HistoryNavigator {
	return &HistoryNavigator{source: source, index: -1}
}

func (h *HistoryNavigator) Index() int { return h.index }

// Reset moves the navigator back before the newest entry.
func (h *HistoryNavigator) Reset() {
	h.index = -1
}

// Up moves to an older line, stopping at the oldest.
func (h *HistoryNavigator) Up() (string, bool) {
	n := h.source.HistoryLen()
	if n == 0 {
		return "", false
	}
	h.index = clamp(h.index+1, 0, n-1)
	return h.source.HistoryAt(h.index)
}

// Down moves to a newer line. It does nothing before or at the newest line.
func (h *HistoryNavigator) Down() (string, bool) {
	if h.index <= 0 {
		return "", false
	}
	n := h.source.HistoryLen()
	if n == 0 {
		return "", false
	}
	h.index = clamp(h.index-1, 0, n-1)
	return h.source.HistoryAt(h.index)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
