package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/siadash/internal/format"
	"github.com/abelbrown/siadash/internal/otel"
)

// debugPanelChrome is the number of terminal lines consumed by DebugPanel's
// border (top + bottom = 2) and vertical padding (top + bottom = 2).
const debugPanelChrome = 4

// debugOverlay renders the event panel: counts over the buffered events
// and the most recent ones. Returns "" if hist is nil.
func debugOverlay(hist *otel.History, width, height int) string {
	if hist == nil {
		return ""
	}

	all := hist.Last(hist.Cap())
	counts := make(map[otel.EventKind]int)
	for _, e := range all {
		counts[e.Kind]++
	}
	recent := all
	if len(recent) > 20 {
		recent = recent[len(recent)-20:]
	}

	fetches := counts[otel.KindFetchComplete] + counts[otel.KindFetchError]
	failRate := "n/a"
	if fetches > 0 {
		failRate = format.Percent(float64(counts[otel.KindFetchError]) / float64(fetches))
	}

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Session Stats"))
	lines = append(lines, fmt.Sprintf("  Fetches:    %d complete, %d errors, %d auth expired (%s failed)",
		counts[otel.KindFetchComplete], counts[otel.KindFetchError], counts[otel.KindAuthExpired], failRate))
	lines = append(lines, fmt.Sprintf("  Trends:     %d loaded, %d empty",
		counts[otel.KindTrendsLoaded], counts[otel.KindTrendsEmpty]))
	lines = append(lines, fmt.Sprintf("  Handoffs:   %d selected, %d applied, %d cleared, %d errors",
		counts[otel.KindTrendSelected], counts[otel.KindTrendApplied], counts[otel.KindSelectionClear], counts[otel.KindHandoffError]))
	lines = append(lines, fmt.Sprintf("  Buffer:     %d / %d events", hist.Len(), hist.Cap()))
	lines = append(lines, "")

	now := time.Now()
	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range recent {
		line := fmt.Sprintf("  %-15s %-20s", format.TimeAgo(e.Time, now), string(e.Kind))
		if e.Target != "" {
			line += "  " + truncateRunes(e.Target, 30)
		}
		if e.Msg != "" {
			line += "  " + truncateRunes(e.Msg, 40)
		}
		if e.Err != "" {
			line += "  ERR:" + truncateRunes(e.Err, 30)
		}
		lines = append(lines, line)
	}

	maxHeight := max(height-debugPanelChrome, 1)
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := min(76, width-4)
	if panelWidth < 20 {
		panelWidth = 20
	}
	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// debugStatusBar renders the status bar for the debug overlay.
func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("D") + StatusBarText.Render(":close")
	return StatusBar.Width(max(width, 1)).Render("  [EVENTS]  " + keys)
}
