package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abelbrown/siadash/internal/format"
	"github.com/spf13/cobra"
)

// eventRecord mirrors otel.Event for decoding. Reading JSONL keeps the
// viewer working against logs written by older builds.
type eventRecord struct {
	Time      time.Time      `json:"t"`
	Level     string         `json:"level"`
	Kind      string         `json:"kind"`
	Comp      string         `json:"comp"`
	SessionID string         `json:"session_id"`
	DurMs     float64        `json:"dur_ms"`
	Count     int            `json:"count"`
	Source    string         `json:"source"`
	Target    string         `json:"target"`
	Status    int            `json:"status"`
	Err       string         `json:"err"`
	Msg       string         `json:"msg"`
	Extra     map[string]any `json:"extra"`
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the JSONL event log",
	Long: `Print recent events from ~/.siadash/siadash.events.jsonl.

Examples:
  siadash events --tail 20
  siadash events --kind fetch --level warn
  siadash events -f --comp handoff
  siadash events --since 2h
  siadash events --since 2026-01-02`,
	Annotations: map[string]string{"runtime": "none"},
	Args:        cobra.NoArgs,
	RunE:        runEvents,
}

func init() {
	f := eventsCmd.Flags()
	f.Int("tail", 50, "number of recent lines to show")
	f.BoolP("follow", "f", false, "keep printing new events")
	f.String("kind", "", "filter by event kind prefix (e.g. 'fetch')")
	f.String("level", "", "minimum level: debug, info, warn, error")
	f.String("comp", "", "filter by component name")
	f.String("session", "", "filter by session ID")
	f.String("since", "", "only events newer than a duration (e.g. 30m) or timestamp")
	f.Bool("json", false, "print raw JSON lines")
}

// levelRank returns a numeric rank for filtering (higher = more severe).
func levelRank(level string) int {
	switch level {
	case "info":
		return 1
	case "warn":
		return 2
	case "error":
		return 3
	default:
		return 0
	}
}

// eventFilter selects events by kind prefix, minimum level, component,
// session and age.
type eventFilter struct {
	kind    string
	level   string
	comp    string
	session string
	since   time.Time
}

// parseSince reads --since as a duration back from now or as a timestamp.
func parseSince(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return time.Time{}, fmt.Errorf("--since %q: negative duration", s)
		}
		return now.Add(-d), nil
	}
	t, err := format.ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--since %q: want a duration or timestamp", s)
	}
	return t, nil
}

func (f eventFilter) match(ev eventRecord) bool {
	if f.kind != "" && !strings.HasPrefix(ev.Kind, f.kind) {
		return false
	}
	if f.level != "" && levelRank(ev.Level) < levelRank(f.level) {
		return false
	}
	if f.comp != "" && ev.Comp != f.comp {
		return false
	}
	if f.session != "" && ev.SessionID != f.session {
		return false
	}
	if !f.since.IsZero() && ev.Time.Before(f.since) {
		return false
	}
	return true
}

func formatEvent(ev eventRecord) string {
	lvl := strings.ToUpper(ev.Level)
	if lvl == "" {
		lvl = "?"
	}
	parts := []string{fmt.Sprintf("%s %-5s [%-7s] %-20s", ev.Time.Format("15:04:05.000"), lvl, ev.Comp, ev.Kind)}

	if ev.Msg != "" {
		parts = append(parts, ev.Msg)
	}
	if ev.Target != "" {
		parts = append(parts, "-> "+ev.Target)
	}
	if ev.Status != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", ev.Status))
	}
	if ev.DurMs > 0 {
		parts = append(parts, fmt.Sprintf("(%.*fms)", durPrecision(ev.DurMs), ev.DurMs))
	}
	if ev.Count > 0 {
		parts = append(parts, fmt.Sprintf("n=%d", ev.Count))
	}
	if ev.Source != "" {
		parts = append(parts, "src="+ev.Source)
	}
	if ev.Err != "" {
		parts = append(parts, "err="+ev.Err)
	}
	return strings.Join(parts, " ")
}

func runEvents(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	tail, _ := flags.GetInt("tail")
	follow, _ := flags.GetBool("follow")
	rawJSON, _ := flags.GetBool("json")
	var filter eventFilter
	filter.kind, _ = flags.GetString("kind")
	filter.level, _ = flags.GetString("level")
	filter.comp, _ = flags.GetString("comp")
	filter.session, _ = flags.GetString("session")
	since, _ := flags.GetString("since")
	var err error
	if filter.since, err = parseSince(since, time.Now()); err != nil {
		return err
	}

	logPath := eventLogPath()
	f, err := os.Open(logPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("event log not found at %s; run siadash first to generate events", logPath)
		}
		return err
	}
	defer f.Close()

	p := &eventPrinter{out: cmd.OutOrStdout(), raw: rawJSON}
	emit := p.print

	for _, l := range readTailLines(f, tail, filter.match) {
		emit(l)
	}
	if !follow {
		return nil
	}

	ctx := cmd.Context()
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}
		if err != nil {
			return err
		}
		line = trimLine(line)
		if len(line) == 0 {
			continue
		}
		var ev eventRecord
		if json.Unmarshal(line, &ev) != nil {
			continue
		}
		if filter.match(ev) {
			emit(parsedLine{ev: ev, raw: line})
		}
	}
}

// eventPrinter writes events, starting a new block with a date line
// whenever the calendar day changes.
type eventPrinter struct {
	out io.Writer
	raw bool
	day string
}

func (p *eventPrinter) print(l parsedLine) {
	if p.raw {
		fmt.Fprintln(p.out, string(l.raw))
		return
	}
	if day := format.Date(l.ev.Time); day != "" && day != p.day {
		fmt.Fprintf(p.out, "-- %s --\n", day)
		p.day = day
	}
	fmt.Fprintln(p.out, formatEvent(l.ev))
}

type parsedLine struct {
	ev  eventRecord
	raw []byte
}

// readTailLines returns the last n lines of r that decode and match.
func readTailLines(r io.Reader, n int, match func(eventRecord) bool) []parsedLine {
	if n <= 0 {
		return nil
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)

	ring := make([]parsedLine, 0, n)
	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev eventRecord
		if json.Unmarshal(raw, &ev) != nil || !match(ev) {
			continue
		}
		// scanner reuses its buffer
		rawCopy := make([]byte, len(raw))
		copy(rawCopy, raw)

		if len(ring) < n {
			ring = append(ring, parsedLine{ev: ev, raw: rawCopy})
			continue
		}
		copy(ring, ring[1:])
		ring[n-1] = parsedLine{ev: ev, raw: rawCopy}
	}
	return ring
}

func trimLine(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

func durPrecision(ms float64) int {
	if ms >= 100 {
		return 0
	}
	if ms >= 1 {
		return 1
	}
	return 2
}
