package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/siadash/internal/otel"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDebugOverlayNilHistory(t *testing.T) {
	if result := debugOverlay(nil, 80, 24); result != "" {
		t.Errorf("debugOverlay(nil) should return empty string, got %q", result)
	}
}

func TestDebugOverlayRendersStats(t *testing.T) {
	hist := otel.NewHistory(64)
	hist.Push(otel.Event{Kind: otel.KindFetchComplete, Time: time.Now()})
	hist.Push(otel.Event{Kind: otel.KindFetchComplete, Time: time.Now()})
	hist.Push(otel.Event{Kind: otel.KindFetchError, Time: time.Now()})
	hist.Push(otel.Event{Kind: otel.KindTrendSelected, Time: time.Now()})
	hist.Push(otel.Event{Kind: otel.KindTrendApplied, Time: time.Now()})

	result := debugOverlay(hist, 100, 40)

	if !strings.Contains(result, "Session Stats") {
		t.Error("overlay should contain 'Session Stats' header")
	}
	if !strings.Contains(result, "2 complete, 1 errors, 0 auth expired (33.3% failed)") {
		t.Errorf("overlay should show fetch stats, got:\n%s", result)
	}
	if !strings.Contains(result, "1 selected, 1 applied") {
		t.Errorf("overlay should show handoff stats, got:\n%s", result)
	}
	if !strings.Contains(result, "5 / 64 events") {
		t.Errorf("overlay should show buffer stats, got:\n%s", result)
	}
}

func TestDebugOverlayRecentEvents(t *testing.T) {
	hist := otel.NewHistory(64)
	hist.Push(otel.Event{Kind: otel.KindFetchStart, Time: time.Now(), Msg: "hello world"})
	hist.Push(otel.Event{Kind: otel.KindFetchError, Time: time.Now(), Err: "timeout"})
	hist.Push(otel.Event{Kind: otel.KindNavigate, Time: time.Now(), Target: "/pipeline/run"})

	result := debugOverlay(hist, 100, 40)

	for _, want := range []string{"Recent Events", "hello world", "ERR:timeout", "/pipeline/run"} {
		if !strings.Contains(result, want) {
			t.Errorf("overlay missing %q, got:\n%s", want, result)
		}
	}
}

func TestDebugOverlayTruncatesToHeight(t *testing.T) {
	hist := otel.NewHistory(64)
	for i := 0; i < 30; i++ {
		hist.Push(otel.Event{Kind: otel.KindFetchStart, Time: time.Now()})
	}
	result := debugOverlay(hist, 80, 12)
	if lines := strings.Count(result, "\n") + 1; lines > 12 {
		t.Errorf("overlay has %d lines, want <= 12", lines)
	}
}

func TestDebugOverlayAgesAndFailureRate(t *testing.T) {
	hist := otel.NewHistory(8)
	hist.Push(otel.Event{Kind: otel.KindFetchComplete, Time: time.Now().Add(-3 * time.Hour)})
	hist.Push(otel.Event{Kind: otel.KindFetchComplete, Time: time.Now()})
	hist.Push(otel.Event{Kind: otel.KindFetchComplete, Time: time.Now()})
	hist.Push(otel.Event{Kind: otel.KindFetchError, Time: time.Now()})

	result := debugOverlay(hist, 100, 40)
	for _, want := range []string{"3 hours ago", "just now", "(25.0% failed)"} {
		if !strings.Contains(result, want) {
			t.Errorf("overlay missing %q, got:\n%s", want, result)
		}
	}

	if result := debugOverlay(otel.NewHistory(8), 100, 40); !strings.Contains(result, "(n/a failed)") {
		t.Errorf("empty history should not report a rate, got:\n%s", result)
	}
}

func TestDebugToggle(t *testing.T) {
	app := NewAppWithConfig(AppConfig{History: otel.NewHistory(8)})
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model, _ = model.(App).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'D'}})
	if !strings.Contains(model.(App).View(), "[EVENTS]") {
		t.Error("D should open the event overlay")
	}
	model, _ = model.(App).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'D'}})
	if strings.Contains(model.(App).View(), "[EVENTS]") {
		t.Error("D should close the event overlay")
	}
}
