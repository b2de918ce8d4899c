package nav

import "sync"

// Entry is one position in the history.
type Entry struct {
	Route   Route
	Payload *Payload
}

// Action describes how the current entry was reached.
type Action int

const (
	ActionPush Action = iota
	ActionReplace
	ActionBack
	ActionForward
	ActionReload
)

// Listener observes every history change.
type Listener func(entry Entry, action Action)

// History is an in-memory browser-style history stack.
type History struct {
	mu        sync.Mutex
	entries   []Entry
	index     int
	listeners []Listener
}

// NewHistory creates a history whose first entry is start.
func NewHistory(start Route) *History {
	return &History{entries: []Entry{{Route: start}}}
}

// Listen registers l and returns a function that removes it.
func (h *History) Listen(l Listener) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, l)
	idx := len(h.listeners) - 1
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if idx < len(h.listeners) {
			h.listeners[idx] = nil
		}
	}
}

// Push adds a new entry after the current one and drops any forward entries.
func (h *History) Push(r Route, p *Payload) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], Entry{Route: r, Payload: p})
	h.index = len(h.entries) - 1
	e, ls := h.entries[h.index], h.snapshot()
	h.mu.Unlock()
	notify(ls, e, ActionPush)
}

// Replace swaps the current entry in place; the history length is unchanged.
func (h *History) Replace(r Route, p *Payload) {
	h.mu.Lock()
	h.entries[h.index] = Entry{Route: r, Payload: p}
	e, ls := h.entries[h.index], h.snapshot()
	h.mu.Unlock()
	notify(ls, e, ActionReplace)
}

// Back moves to the previous entry and reports whether it moved.
func (h *History) Back() bool {
	return h.move(-1, ActionBack)
}

// Forward moves to the next entry and reports whether it moved.
func (h *History) Forward() bool {
	return h.move(1, ActionForward)
}

// Reload re-enters the current entry, dropping its payload.
func (h *History) Reload() {
	h.mu.Lock()
	h.entries[h.index].Payload = nil
	e, ls := h.entries[h.index], h.snapshot()
	h.mu.Unlock()
	notify(ls, e, ActionReload)
}

func (h *History) move(delta int, action Action) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	// Payloads do not survive history replay.
	h.entries[h.index].Payload = nil
	e, ls := h.entries[h.index], h.snapshot()
	h.mu.Unlock()
	notify(ls, e, action)
	return true
}

// Current returns the current entry.
func (h *History) Current() Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// CanGoBack reports whether Back would move.
func (h *History) CanGoBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

func (h *History) snapshot() []Listener {
	return append([]Listener(nil), h.listeners...)
}

func notify(ls []Listener, e Entry, action Action) {
	for _, l := range ls {
		if l != nil {
			l(e, action)
		}
	}
}
