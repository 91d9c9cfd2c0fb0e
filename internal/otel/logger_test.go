package otel

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEmitWritesValidJSONL(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindFetchStart, Level: LevelInfo, Comp: "api", Target: "/api/ui/trends"})
	l.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["kind"] != "fetch.start" {
		t.Errorf("expected kind=fetch.start, got %v", decoded["kind"])
	}
	if decoded["comp"] != "api" {
		t.Errorf("expected comp=api, got %v", decoded["comp"])
	}
	if decoded["target"] != "/api/ui/trends" {
		t.Errorf("expected target, got %v", decoded["target"])
	}
}

func TestEmitSetsTimeAndSessionID(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	before := time.Now()
	l.Emit(Event{Kind: KindStartup})
	l.Close()
	after := time.Now()

	var ev Event
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Time.Before(before) || ev.Time.After(after) {
		t.Errorf("time %v not in [%v, %v]", ev.Time, before, after)
	}
	if len(ev.SessionID) != 16 {
		t.Errorf("session_id should be 16 chars, got %q", ev.SessionID)
	}
	if ev.SessionID != l.SessionID() {
		t.Errorf("session_id = %q, want %q", ev.SessionID, l.SessionID())
	}
}

func TestDurToMs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindFetchComplete, Dur: 250 * time.Millisecond})
	l.Close()

	var decoded map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got, _ := decoded["dur_ms"].(float64); got != 250 {
		t.Errorf("expected dur_ms=250, got %v", decoded["dur_ms"])
	}
}

func TestConcurrentEmit(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Info(KindTrendsLoaded, "ui", "loaded")
		}()
	}
	wg.Wait()
	l.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 50 {
		t.Errorf("expected 50 lines, got %d", len(lines))
	}
}

func TestEmitAfterCloseIsDropped(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.Close()
	l.Close()

	l.Info(KindShutdown, "main", "late")
	if l.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", l.Dropped())
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %q", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info(KindStartup, "main", "x")
	l.Error(KindError, "main", errors.New("boom"))
	l.SetHistory(NewHistory(1))
	l.Close()
	if l.Dropped() != 0 {
		t.Error("nil logger should report no drops")
	}
}

func TestHistoryReceivesEvents(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	h := NewHistory(2)
	l.SetHistory(h)

	l.Info(KindStartup, "main", "one")
	l.Warn(KindFetchError, "api", "two")
	l.Error(KindHandoffError, "handoff", errors.New("three"))
	l.Close()

	last := h.Last(5)
	if len(last) != 2 {
		t.Fatalf("expected 2 events, got %d", len(last))
	}
	if last[0].Msg != "two" || last[1].Err != "three" {
		t.Errorf("unexpected history order: %+v", last)
	}
}

func TestHistoryWraps(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(Event{Count: i})
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	got := h.Last(3)
	for i, want := range []int{3, 4, 5} {
		if got[i].Count != want {
			t.Errorf("Last[%d].Count = %d, want %d", i, got[i].Count, want)
		}
	}
	if h.Last(0) != nil {
		t.Error("Last(0) should be nil")
	}
}
