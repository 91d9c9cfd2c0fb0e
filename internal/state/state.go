// Package state is the persisted client state: a small key/value store
// holding the auth token, theme, saved keywords and the selected trend.
package state

import (
	"errors"
	"sync"
)

// Well-known keys.
const (
	KeyToken         = "auth_token"
	KeyTheme         = "theme"
	KeyKeywords      = "trendKeywords"
	KeySelectedTrend = "selected_trend"
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrNotFound is returned by Get when the key has never been written or
// was deleted.
var ErrNotFound = errors.New("state: key not found")

// Store is the get/set/clear surface components depend on.
// Implementations must make Set durable before returning: a reader
// opened right after Set observes the full value.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Memory is an in-process Store, used as a test double and when no
// database is configured.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
