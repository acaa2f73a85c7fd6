package urlstate

import (
	"net/url"
	"sync"
)

// History abstracts the navigation target a Binding writes query
// parameters to. Changes delivers externally-initiated query updates,
// such as back/forward navigation.
type History interface {
	Query() url.Values
	Push(query url.Values)
	Replace(query url.Values)
	Changes() <-chan url.Values
}

// MemoryHistory is an in-process History with a navigable entry stack.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []url.Values
	pos     int
	changes chan url.Values
}

// NewMemoryHistory creates a history with a single initial entry.
func NewMemoryHistory(initial url.Values) *MemoryHistory {
	if initial == nil {
		initial = url.Values{}
	}

	return &MemoryHistory{
		entries: []url.Values{cloneValues(initial)},
		changes: make(chan url.Values, 8),
	}
}

func (h *MemoryHistory) Query() url.Values {
	h.mu.Lock()
	defer h.mu.Unlock()

	return cloneValues(h.entries[h.pos])
}

func (h *MemoryHistory) Push(query url.Values) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.pos+1], cloneValues(query))
	h.pos = len(h.entries) - 1
}

func (h *MemoryHistory) Replace(query url.Values) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.pos] = cloneValues(query)
}

func (h *MemoryHistory) Changes() <-chan url.Values {
	return h.changes
}

// Back navigates to the previous entry and notifies the binding, like
// a browser back button.
func (h *MemoryHistory) Back() {
	h.mu.Lock()
	if h.pos > 0 {
		h.pos--
	}
	query := cloneValues(h.entries[h.pos])
	h.mu.Unlock()

	h.changes <- query
}

// Forward navigates to the next entry and notifies the binding.
func (h *MemoryHistory) Forward() {
	h.mu.Lock()
	if h.pos < len(h.entries)-1 {
		h.pos++
	}
	query := cloneValues(h.entries[h.pos])
	h.mu.Unlock()

	h.changes <- query
}

func cloneValues(values url.Values) url.Values {
	clone := make(url.Values, len(values))
	for key, vals := range values {
		clone[key] = append([]string(nil), vals...)
	}

	return clone
}
