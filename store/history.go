package store

import (
	"sync"
	"time"
)

// HistoryEntry records a single answered question.
type HistoryEntry struct {
	Query   string    `json:"query"`
	Answer  string    `json:"answer"`
	AskedAt time.Time `json:"asked_at"`
	Matched int       `json:"matched_products"`
}

// QueryHistory keeps a bounded, newest-first record of answered
// questions. When the capacity is exceeded the oldest entry is dropped.
type QueryHistory struct {
	mu       sync.Mutex
	capacity int
	entries  []HistoryEntry
}

// NewQueryHistory creates a history buffer holding at most capacity
// entries. A non-positive capacity defaults to 50.
func NewQueryHistory(capacity int) *QueryHistory {
	if capacity <= 0 {
		capacity = 50
	}
	return &QueryHistory{capacity: capacity}
}

// Add records an entry, evicting the oldest when full.
func (h *QueryHistory) Add(entry HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[1:]
	}
}

// Entries returns a copy of the recorded entries, newest first.
func (h *QueryHistory) Entries() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryEntry, len(h.entries))
	for i, entry := range h.entries {
		out[len(h.entries)-1-i] = entry
	}
	return out
}

// Clear removes all recorded entries.
func (h *QueryHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Len returns the number of recorded entries.
func (h *QueryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
