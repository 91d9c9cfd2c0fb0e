package state

import (
	"errors"
	"path/filepath"
	"testing"
)

// stores returns every Store implementation under test.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	mem, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { mem.Close() })

	file, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open(file) failed: %v", err)
	}
	t.Cleanup(func() { file.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": mem,
		"file":   file,
	}
}

func TestGetSetDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
			}

			if err := s.Set("k", "v1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set("k", "v2"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, err := s.Get("k")
			if err != nil || got != "v2" {
				t.Errorf("Get(k) = %q, %v; want v2", got, err)
			}

			if err := s.Delete("k"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Delete err = %v, want ErrNotFound", err)
			}
			if err := s.Delete("k"); err != nil {
				t.Errorf("Delete missing key should succeed, got %v", err)
			}
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := SetToken(s, "abc"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if Token(s2) != "abc" {
		t.Errorf("token not persisted across reopen")
	}
	keys, err := s2.Keys()
	if err != nil || len(keys) != 1 || keys[0] != KeyToken {
		t.Errorf("Keys() = %v, %v", keys, err)
	}
}

func TestTokenHelpers(t *testing.T) {
	s := NewMemory()
	if Authenticated(s) {
		t.Error("empty store should not be authenticated")
	}
	SetToken(s, "tok")
	if !Authenticated(s) || Token(s) != "tok" {
		t.Error("token not stored")
	}
	ClearToken(s)
	if Authenticated(s) {
		t.Error("token should be cleared")
	}
}

func TestThemeHelpers(t *testing.T) {
	s := NewMemory()
	if got := Theme(s, ThemeLight); got != ThemeLight {
		t.Errorf("Theme fallback = %q", got)
	}
	if err := SetTheme(s, "sepia"); err == nil {
		t.Error("invalid theme should be rejected")
	}

	next, err := ToggleTheme(s, ThemeLight)
	if err != nil || next != ThemeDark {
		t.Errorf("ToggleTheme = %q, %v; want dark", next, err)
	}
	next, _ = ToggleTheme(s, ThemeLight)
	if next != ThemeLight || Theme(s, ThemeDark) != ThemeLight {
		t.Errorf("second toggle = %q, want light", next)
	}
}

func TestKeywords(t *testing.T) {
	s := NewMemory()
	kw, err := Keywords(s)
	if err != nil || kw != "" {
		t.Errorf("Keywords on empty store = %q, %v", kw, err)
	}
	SetKeywords(s, "ai, elections")
	if kw, _ := Keywords(s); kw != "ai, elections" {
		t.Errorf("Keywords = %q", kw)
	}
}
