package handoff

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abelbrown/siadash/internal/state"
	"github.com/abelbrown/siadash/internal/trend"
)

// ErrEmptySelection is returned when a record without a title is handed
// off, or when no selection is persisted.
var ErrEmptySelection = errors.New("handoff: empty selection")

// SaveSelection persists t as the current selection, replacing any
// previous one.
func SaveSelection(s state.Store, t trend.Trend) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptySelection
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	if err := s.Set(state.KeySelectedTrend, string(data)); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

// LoadSelection reads the current selection. It returns ErrEmptySelection
// when nothing is persisted.
func LoadSelection(s state.Store) (trend.Trend, error) {
	raw, err := s.Get(state.KeySelectedTrend)
	if errors.Is(err, state.ErrNotFound) {
		return trend.Trend{}, ErrEmptySelection
	}
	if err != nil {
		return trend.Trend{}, fmt.Errorf("load selection: %w", err)
	}

	var t trend.Trend
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return trend.Trend{}, fmt.Errorf("decode selection: %w", err)
	}
	return t, nil
}

// ClearSelection removes the current selection. Clearing an absent
// selection is not an error.
func ClearSelection(s state.Store) error {
	if err := s.Delete(state.KeySelectedTrend); err != nil && !errors.Is(err, state.ErrNotFound) {
		return fmt.Errorf("clear selection: %w", err)
	}
	return nil
}
