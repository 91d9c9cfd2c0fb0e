// Package notify is the transient notification (toast) surface.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is a toast severity. Values match the dashboard's badge colors.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Danger  Level = "danger"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 4 * time.Second

// MaxToasts caps the toasts a Center holds; the oldest is dropped first.
const MaxToasts = 5

// Notifier shows a transient message.
type Notifier interface {
	Notify(level Level, msg string)
}

// Toast is one notification.
type Toast struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

// Center keeps recent toasts until they expire. Goroutine-safe: handoff
// timers and the UI loop both write to it.
type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	toasts []Toast
}

var _ Notifier = (*Center)(nil)

// NewCenter creates a Center. ttl <= 0 means DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// Notify records a toast.
func (c *Center) Notify(level Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = append(c.toasts, Toast{
		ID:      uuid.NewString(),
		Level:   level,
		Message: msg,
		At:      c.now(),
	})
	if n := len(c.toasts) - MaxToasts; n > 0 {
		c.toasts = append(c.toasts[:0], c.toasts[n:]...)
	}
}

// Active drops expired toasts and returns the rest, oldest first.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if t.At.After(cutoff) {
			kept = append(kept, t)
		}
	}
	c.toasts = kept

	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes the toast with the given ID.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Recorder is a Notifier that keeps every toast, for tests.
type Recorder struct {
	mu     sync.Mutex
	Toasts []Toast
}

// Notify records a toast.
func (r *Recorder) Notify(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Toasts = append(r.Toasts, Toast{Level: level, Message: msg, At: time.Now()})
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Toasts) == 0 {
		return Toast{}, false
	}
	return r.Toasts[len(r.Toasts)-1], true
}
