package logging

import (
	"sync"
	"time"
)

// LogEntry is one log line kept in memory for the /api/logs stream.
type LogEntry struct {
	Timestamp  time.Time      `json:"timestamp"`
	Level      string         `json:"level"`
	Module     string         `json:"module"`
	Message    string         `json:"message"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// History keeps the most recent log entries up to a fixed capacity.
type History struct {
	mu      sync.RWMutex
	entries []LogEntry
	next    int
	full    bool
}

// NewHistory returns a history holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{entries: make([]LogEntry, capacity)}
}

// Append stores entry, dropping the oldest one when the history is full.
func (h *History) Append(entry LogEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.next] = entry
	h.next++
	if h.next == len(h.entries) {
		h.next = 0
		h.full = true
	}
}

// Len reports how many entries are stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.len()
}

func (h *History) len() int {
	if h.full {
		return len(h.entries)
	}
	return h.next
}

// Recent returns up to n entries, oldest first. n <= 0 returns everything.
func (h *History) Recent(n int) []LogEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	size := h.len()
	if n <= 0 || n > size {
		n = size
	}
	if n == 0 {
		return nil
	}

	out := make([]LogEntry, n)
	start := h.next - n
	if start < 0 {
		start += len(h.entries)
	}
	for i := range out {
		out[i] = h.entries[(start+i)%len(h.entries)]
	}
	return out
}
