package log

import (
	"fmt"
	"sync"
	"time"
)

// Severity tags an entry on the console channel.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is a single line on the console channel.
type Entry struct {
	Time     time.Time
	Severity Severity
	Message  string
}

// TimeFormat is the timestamp layout used when an entry is displayed.
const TimeFormat = "15:04:05"

// String renders the entry the way the console shows it.
func (e Entry) String() string {
	return fmt.Sprintf("[%s]  %s", e.Time.Format(TimeFormat), e.Message)
}

// Hub is the single text-output channel of the console. Every line is
// written to the file loggers and handed to each subscriber in
// subscription order.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
	now    func() time.Time
	// quiet disables the file loggers, used by tests.
	quiet bool
}

type subscription struct {
	id int
	fn func(Entry)
}

// NewHub creates a hub with no subscribers.
func NewHub() *Hub {
	return &Hub{now: time.Now}
}

// NewQuietHub creates a hub that only notifies subscribers.
func NewQuietHub() *Hub {
	return &Hub{now: time.Now, quiet: true}
}

// SetClock replaces the time source used to stamp entries.
func (h *Hub) SetClock(now func() time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = now
}

// Subscribe registers fn for every future entry. The returned function
// removes the subscription; calling it more than once is harmless.
func (h *Hub) Subscribe(fn func(Entry)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, fn: fn})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish stamps message and delivers it.
func (h *Hub) Publish(severity Severity, message string) {
	h.publish(publishDepth, severity, message)
}

// publishDepth makes the file loggers report the caller of Publish or of
// the formatting helpers, not the hub.
const publishDepth = 3

func (h *Hub) publish(calldepth int, severity Severity, message string) {
	h.mu.Lock()
	entry := Entry{Time: h.now(), Severity: severity, Message: message}
	subs := make([]subscription, len(h.subs))
	copy(subs, h.subs)
	quiet := h.quiet
	h.mu.Unlock()

	if !quiet {
		switch severity {
		case SeverityWarning:
			WarningLog.Output(calldepth, message)
		case SeverityError:
			ErrorLog.Output(calldepth, message)
		default:
			InfoLog.Output(calldepth, message)
		}
	}

	// Subscribers run outside the lock so they may publish again.
	for _, s := range subs {
		s.fn(entry)
	}
}

func (h *Hub) Infof(format string, v ...interface{}) {
	h.publish(publishDepth, SeverityNormal, fmt.Sprintf(format, v...))
}

func (h *Hub) Warningf(format string, v ...interface{}) {
	h.publish(publishDepth, SeverityWarning, fmt.Sprintf(format, v...))
}

func (h *Hub) Errorf(format string, v ...interface{}) {
	h.publish(publishDepth, SeverityError, fmt.Sprintf(format, v...))
}
