// Package format holds display helpers shared by the dashboard screens
// and the CLI: dates, relative times, numbers, badge levels and input
// checks.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the calendar date layout used for display.
const DateLayout = "2006-01-02"

// Date formats t as a calendar date in local time.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// TimeAgo describes t relative to now, e.g. "3 hours ago".
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if now.Sub(t) < time.Minute && !t.After(now) {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// ParseTime accepts the timestamp formats the backend emits.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05", DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("format: unrecognized time %q", s)
}

// Number formats n with thousands separators.
func Number(n int64) string {
	return humanize.Comma(n)
}

// Float formats f with thousands separators and at most two decimals.
func Float(f float64) string {
	return humanize.CommafWithDigits(f, 2)
}

// Percent formats a 0..1 ratio with one decimal, e.g. 0.853 -> "85.3%".
func Percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
