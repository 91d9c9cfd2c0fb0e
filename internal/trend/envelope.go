package trend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Shape identifies which variant of the trends field arrived.
type Shape int

const (
	// ShapeNone covers a missing, null or wrongly typed trends field.
	ShapeNone Shape = iota
	// ShapeFlat is an ordered list of records.
	ShapeFlat
	// ShapeBySource is an object mapping source name to a list of records.
	ShapeBySource
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeBySource:
		return "by-source"
	default:
		return "none"
	}
}

// SourceGroup is one entry of a by-source response.
type SourceGroup struct {
	Name   string
	Trends []Trend
}

// Trends is the decoded trends field: exactly one of the Flat or BySource
// variants, or neither. Construct with Flat or BySource; decode with
// UnmarshalJSON.
type Trends struct {
	shape  Shape
	flat   []Trend
	groups []SourceGroup
}

// Flat builds the ordered-list variant.
func Flat(list []Trend) Trends {
	return Trends{shape: ShapeFlat, flat: list}
}

// BySource builds the mapping variant. Group order is the iteration order
// used by Normalize.
func BySource(groups ...SourceGroup) Trends {
	return Trends{shape: ShapeBySource, groups: groups}
}

// Shape returns the variant.
func (t Trends) Shape() Shape { return t.shape }

// Groups returns the by-source groups in document order (nil for other
// variants).
func (t Trends) Groups() []SourceGroup { return t.groups }

// UnmarshalJSON decides the variant from the first token. Object keys are
// streamed so their document order is kept. Wrong types never fail: they
// decode to ShapeNone, and elements that are not trend objects are
// skipped.
func (t *Trends) UnmarshalJSON(b []byte) error {
	*t = Trends{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '[':
		list, ok := decodeList(b)
		if ok {
			*t = Flat(list)
		}
	case '{':
		groups, ok := decodeGroups(b)
		if ok {
			*t = BySource(groups...)
		}
	}
	return nil
}

// MarshalJSON re-encodes the variant: a list, an object in group order, or
// null.
func (t Trends) MarshalJSON() ([]byte, error) {
	switch t.shape {
	case ShapeFlat:
		if t.flat == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.flat)
	case ShapeBySource:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, g := range t.groups {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, _ := json.Marshal(g.Name)
			buf.Write(name)
			buf.WriteByte(':')
			list := g.Trends
			if list == nil {
				list = []Trend{}
			}
			data, err := json.Marshal(list)
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

func decodeList(b []byte) ([]Trend, bool) {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, false
	}
	list := make([]Trend, 0, len(raws))
	for _, raw := range raws {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			continue
		}
		var tr Trend
		if err := json.Unmarshal(raw, &tr); err != nil {
			continue
		}
		list = append(list, tr)
	}
	return list, true
}

func decodeGroups(b []byte) ([]SourceGroup, bool) {
	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, false
	}

	var groups []SourceGroup
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		name, ok := tok.(string)
		if !ok {
			return nil, false
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}
		list, ok := decodeList(raw)
		if !ok {
			continue
		}
		// A repeated key keeps its first position and its last value.
		if i, seen := index[name]; seen {
			groups[i].Trends = list
			continue
		}
		index[name] = len(groups)
		groups = append(groups, SourceGroup{Name: name, Trends: list})
	}
	return groups, true
}

// SourceList is the optional sources field. Anything other than a list of
// strings decodes to nil.
type SourceList []string

// UnmarshalJSON accepts a list of strings and ignores other shapes.
func (s *SourceList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		*s = nil
		return nil
	}
	*s = list
	return nil
}

// Envelope is the top-level trends response.
type Envelope struct {
	Trends  Trends     `json:"trends"`
	Sources SourceList `json:"sources,omitempty"`
}

// Decode parses a response body. It fails only when the body is not a JSON
// object; callers treat that the same as an empty result.
func Decode(body []byte) (Envelope, error) {
	var env Envelope
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Envelope{}, fmt.Errorf("decode trends envelope: body is not a JSON object")
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode trends envelope: %w", err)
	}
	return env, nil
}

// Normalize flattens the variant into one ordered list. Flat lists are
// returned as-is; by-source groups are concatenated in document key
// order; anything else yields an empty, non-nil list.
func Normalize(t Trends) []Trend {
	switch t.shape {
	case ShapeFlat:
		if t.flat == nil {
			return []Trend{}
		}
		return t.flat
	case ShapeBySource:
		n := 0
		for _, g := range t.groups {
			n += len(g.Trends)
		}
		out := make([]Trend, 0, n)
		for _, g := range t.groups {
			out = append(out, g.Trends...)
		}
		return out
	case ShapeNone:
		return []Trend{}
	}
	return []Trend{}
}

// Normalize flattens the envelope's trends.
func (e Envelope) Normalize() []Trend {
	return Normalize(e.Trends)
}

// Attribution returns the contributing source names: the sources field
// when present, otherwise the by-source keys. Duplicates and blanks are
// dropped, order kept.
func (e Envelope) Attribution() []string {
	names := []string(e.Sources)
	if len(names) == 0 && e.Trends.shape == ShapeBySource {
		for _, g := range e.Trends.groups {
			names = append(names, g.Name)
		}
	}

	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Dedupe drops records whose case-insensitive title was already seen,
// keeping the first occurrence.
func Dedupe(list []Trend) []Trend {
	seen := make(map[string]bool, len(list))
	out := make([]Trend, 0, len(list))
	for _, t := range list {
		key := strings.ToLower(strings.TrimSpace(t.Title))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
