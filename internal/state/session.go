package state

import (
	"errors"
	"fmt"
)

// Token returns the stored bearer token, or "" when none is stored or the
// store cannot be read.
func Token(s Store) string {
	v, err := s.Get(KeyToken)
	if err != nil {
		return ""
	}
	return v
}

// SetToken stores the bearer token.
func SetToken(s Store, token string) error {
	return s.Set(KeyToken, token)
}

// ClearToken removes the bearer token.
func ClearToken(s Store) error {
	return s.Delete(KeyToken)
}

// Authenticated reports whether a token is stored.
func Authenticated(s Store) bool {
	return Token(s) != ""
}

// Theme returns the persisted theme, or fallback when none is persisted.
func Theme(s Store, fallback string) string {
	v, err := s.Get(KeyTheme)
	if err != nil || (v != ThemeLight && v != ThemeDark) {
		return fallback
	}
	return v
}

// SetTheme persists theme, which must be "light" or "dark".
func SetTheme(s Store, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("state: invalid theme %q", theme)
	}
	return s.Set(KeyTheme, theme)
}

// ToggleTheme flips the persisted theme and returns the new value.
func ToggleTheme(s Store, fallback string) (string, error) {
	next := ThemeDark
	if Theme(s, fallback) == ThemeDark {
		next = ThemeLight
	}
	return next, SetTheme(s, next)
}

// Keywords returns the saved trend keywords.
func Keywords(s Store) (string, error) {
	v, err := s.Get(KeyKeywords)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// SetKeywords saves the trend keywords.
func SetKeywords(s Store, keywords string) error {
	return s.Set(KeyKeywords, keywords)
}
