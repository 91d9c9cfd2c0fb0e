// Package ui provides the Bubble Tea TUI for siadash.
package ui

import (
	"time"

	"github.com/abelbrown/siadash/internal/handoff"
	"github.com/abelbrown/siadash/internal/render"
	"github.com/abelbrown/siadash/internal/trend"
)

// TrendsLoaded is sent when a dashboard fetch finishes. OK is false when
// the fetch failed; Env is then empty.
type TrendsLoaded struct {
	Env trend.Envelope
	OK  bool
}

// SidebarLoaded is sent when the pipeline sidebar fetch finishes.
type SidebarLoaded struct {
	List []trend.Trend
	OK   bool
}

// Navigate switches screens. It is what nav.Location's dispatcher sends.
type Navigate struct {
	Target string
}

// CardActivated carries the action of the card the user activated.
type CardActivated struct {
	Action render.Action
}

// HandoffDone is sent after a select, apply, restore or clear ran.
type HandoffDone struct {
	Err error
}

// LoginDone is sent when a login attempt finishes.
type LoginDone struct {
	Err error
}

// RunDone is sent when a pipeline submit finishes.
type RunDone struct {
	Result handoff.RunResult
	Err    error
}

// ThemeChanged is sent after the theme was toggled.
type ThemeChanged struct {
	Theme string
	Err   error
}

// KeywordsSaved is sent after the keyword filter was persisted.
type KeywordsSaved struct {
	Keywords string
	Err      error
}

// tickMsg polls toasts and fallback navigations.
type tickMsg time.Time

// panicMsg is produced by guard when a command panics.
type panicMsg struct {
	Value any
}
