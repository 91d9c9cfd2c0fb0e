// Package nav holds the client's current location and moves it between
// the dashboard, pipeline and login screens.
package nav

import (
	"errors"
	"fmt"
	"sync"
)

// Navigation targets.
const (
	Login     = "/login"
	Dashboard = "/dashboard"
	Pipeline  = "/pipeline/run"
)

var (
	// ErrUnknownTarget is returned by Assign for a target with no screen.
	ErrUnknownTarget = errors.New("nav: unknown target")
	// ErrNoDispatcher is returned by Assign before a dispatcher is attached.
	ErrNoDispatcher = errors.New("nav: no dispatcher attached")
)

// Known reports whether target names a screen.
func Known(target string) bool {
	switch target {
	case Login, Dashboard, Pipeline:
		return true
	}
	return false
}

// Navigator changes the current location. Assign is the primary mechanism
// and may fail; Set is the fallback and always records the target.
type Navigator interface {
	Assign(target string) error
	Set(target string)
}

// Location is the process-wide location. Goroutine-safe.
type Location struct {
	mu       sync.Mutex
	current  string
	pending  bool
	dispatch func(target string) error
}

var _ Navigator = (*Location)(nil)

// NewLocation starts at initial.
func NewLocation(initial string) *Location {
	return &Location{current: initial}
}

// Attach sets the dispatcher Assign uses to deliver a navigation, e.g. a
// function that sends a message into the running UI program.
func (l *Location) Attach(dispatch func(target string) error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dispatch = dispatch
}

// Assign delivers target through the dispatcher and records it.
func (l *Location) Assign(target string) error {
	if !Known(target) {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}

	l.mu.Lock()
	dispatch := l.dispatch
	l.mu.Unlock()

	if dispatch == nil {
		return ErrNoDispatcher
	}
	if err := dispatch(target); err != nil {
		return fmt.Errorf("dispatch %s: %w", target, err)
	}

	l.mu.Lock()
	l.current = target
	l.pending = false
	l.mu.Unlock()
	return nil
}

// Set records target and flags it for the next Pending call.
func (l *Location) Set(target string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = target
	l.pending = true
}

// Current returns the current location.
func (l *Location) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Pending returns a location recorded by Set that has not been observed
// yet. The UI polls it so fallback navigations still switch screens.
func (l *Location) Pending() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.pending {
		return "", false
	}
	l.pending = false
	return l.current, true
}

// Go navigates with Assign and falls back to Set when Assign fails. The
// returned error is the primary failure, for logging; the location is
// changed either way.
func Go(n Navigator, target string) error {
	err := n.Assign(target)
	if err != nil {
		n.Set(target)
	}
	return err
}
