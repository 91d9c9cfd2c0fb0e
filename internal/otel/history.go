package otel

import "sync"

// DefaultHistorySize is the number of events kept by NewHistory(0).
const DefaultHistorySize = 64

// History is a fixed-size circular buffer of recent events.
// Goroutine-safe.
type History struct {
	mu    sync.Mutex
	buf   []Event
	head  int
	count int
}

// NewHistory creates a History holding up to size events.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{buf: make([]Event, size)}
}

// Push records e, overwriting the oldest event when full.
func (h *History) Push(e Event) {
	h.mu.Lock()
	h.buf[h.head] = e
	h.head = (h.head + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
	h.mu.Unlock()
}

// Last returns up to n most recent events, oldest first.
func (h *History) Last(n int) []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}
	out := make([]Event, n)
	size := len(h.buf)
	start := (h.head - n + size) % size
	for i := 0; i < n; i++ {
		out[i] = h.buf[(start+i)%size]
	}
	return out
}

// Len returns the number of buffered events.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Cap returns the buffer capacity.
func (h *History) Cap() int {
	return len(h.buf)
}
