// Package otel provides structured observability for siadash.
//
// Events are typed structs serialized as JSONL lines. The Logger writes
// events asynchronously via a buffered channel and a drain goroutine.
// An optional History keeps the most recent events for the status footer.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// API client
	KindFetchStart    EventKind = "fetch.start"
	KindFetchComplete EventKind = "fetch.complete"
	KindFetchError    EventKind = "fetch.error"
	KindAuthExpired   EventKind = "fetch.auth_expired"

	// Trend flow
	KindTrendsLoaded   EventKind = "trend.loaded"
	KindTrendsEmpty    EventKind = "trend.empty"
	KindTrendSelected  EventKind = "handoff.select"
	KindTrendApplied   EventKind = "handoff.apply"
	KindSelectionClear EventKind = "handoff.clear"
	KindHandoffError   EventKind = "handoff.error"
	KindNavigate       EventKind = "nav.navigate"
	KindNavigateFall   EventKind = "nav.fallback"

	// Persisted state
	KindStateError EventKind = "state.error"

	// System
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"
	KindPanic    EventKind = "sys.panic"
)

// Event is the universal observability record. Every field except Kind and
// Time is optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "api", "handoff", "ui", "main"
	SessionID string         `json:"session_id,omitempty"`
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"`
	Count     int            `json:"count,omitempty"`
	Source    string         `json:"source,omitempty"`
	Target    string         `json:"target,omitempty"` // endpoint or navigation target
	Status    int            `json:"status,omitempty"` // HTTP status
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
