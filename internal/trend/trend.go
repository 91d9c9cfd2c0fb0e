// Package trend defines trend records and normalizes the backend's two
// response shapes into one ordered list.
package trend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/abelbrown/siadash/internal/format"
)

// DefaultSource is shown when a record carries no source.
const DefaultSource = "General"

// Trend is a single item of external interest data. Records are values:
// nothing in this module mutates one after decoding.
type Trend struct {
	Title    string    `json:"title"`
	Summary  string    `json:"summary,omitempty"`
	Source   string    `json:"source,omitempty"`
	Category string    `json:"category,omitempty"`
	URL      string    `json:"url,omitempty"`
	Traffic  Indicator `json:"traffic,omitzero"`
	Score    Indicator `json:"score,omitzero"`
}

// UnmarshalJSON decodes a record leniently: a text field holding a
// non-string JSON value is treated as absent rather than failing the
// whole record. Non-object input is still an error.
func (t *Trend) UnmarshalJSON(b []byte) error {
	var raw struct {
		Title    json.RawMessage `json:"title"`
		Summary  json.RawMessage `json:"summary"`
		Source   json.RawMessage `json:"source"`
		Category json.RawMessage `json:"category"`
		URL      json.RawMessage `json:"url"`
		Traffic  Indicator       `json:"traffic"`
		Score    Indicator       `json:"score"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Trend{
		Title:    text(raw.Title),
		Summary:  text(raw.Summary),
		Source:   text(raw.Source),
		Category: text(raw.Category),
		URL:      text(raw.URL),
		Traffic:  raw.Traffic,
		Score:    raw.Score,
	}
	return nil
}

// text returns the value of a JSON string, or "" for any other kind.
func text(raw json.RawMessage) string {
	r := bytes.TrimSpace(raw)
	if len(r) == 0 || r[0] != '"' {
		return ""
	}
	var s string
	if json.Unmarshal(r, &s) != nil {
		return ""
	}
	return s
}

// SourceLabel returns Source, or DefaultSource when empty.
func (t Trend) SourceLabel() string {
	if strings.TrimSpace(t.Source) == "" {
		return DefaultSource
	}
	return t.Source
}

// Indicator returns Traffic when present, otherwise Score.
func (t Trend) Indicator() Indicator {
	if !t.Traffic.IsZero() {
		return t.Traffic
	}
	return t.Score
}

// Indicator is a display-only numeric or text value ("20K+", 87, 0.93).
// The raw JSON is kept so a record re-encodes exactly as it arrived.
type Indicator struct {
	raw json.RawMessage
}

// NumberIndicator builds an Indicator from a number.
func NumberIndicator(f float64) Indicator {
	return Indicator{raw: json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64))}
}

// TextIndicator builds an Indicator from text.
func TextIndicator(s string) Indicator {
	b, _ := json.Marshal(s)
	return Indicator{raw: b}
}

// IsZero reports whether the indicator is absent, null or an empty string.
func (i Indicator) IsZero() bool {
	r := bytes.TrimSpace(i.raw)
	return len(r) == 0 || string(r) == "null" || string(r) == `""`
}

// Number returns the numeric value, if the indicator is a JSON number.
func (i Indicator) Number() (float64, bool) {
	var f float64
	if i.IsZero() || json.Unmarshal(i.raw, &f) != nil {
		return 0, false
	}
	return f, true
}

// String formats the indicator for display: integers get thousands
// separators, fractions two decimals, text is returned as-is.
func (i Indicator) String() string {
	if i.IsZero() {
		return ""
	}
	if f, ok := i.Number(); ok {
		if f == float64(int64(f)) {
			return format.Number(int64(f))
		}
		return format.Float(f)
	}
	var s string
	if json.Unmarshal(i.raw, &s) == nil {
		return s
	}
	return string(i.raw)
}

// MarshalJSON emits the original raw value.
func (i Indicator) MarshalJSON() ([]byte, error) {
	if len(i.raw) == 0 {
		return []byte("null"), nil
	}
	return i.raw, nil
}

// UnmarshalJSON keeps numbers and strings; any other JSON kind (objects,
// arrays, booleans) is treated as absent.
func (i *Indicator) UnmarshalJSON(b []byte) error {
	r := bytes.TrimSpace(b)
	if len(r) == 0 {
		i.raw = nil
		return nil
	}
	switch r[0] {
	case '"', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		i.raw = append(json.RawMessage(nil), r...)
	default:
		i.raw = nil
	}
	return nil
}

// Equal reports whether two indicators carry the same raw value.
func (i Indicator) Equal(o Indicator) bool {
	return bytes.Equal(bytes.TrimSpace(i.raw), bytes.TrimSpace(o.raw))
}
