// Package config loads siadash settings from ~/.siadash/config.json,
// an optional .env file, and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the persistent client configuration.
type Config struct {
	API      APIConfig      `json:"api"`
	Trends   TrendsConfig   `json:"trends"`
	Pipeline PipelineConfig `json:"pipeline"`
	UI       UIConfig       `json:"ui"`

	// DBPath is the SQLite file backing persisted client state.
	DBPath string `json:"db_path,omitempty"`
}

// APIConfig describes the backend.
type APIConfig struct {
	BaseURL           string  `json:"base_url"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

// TrendsConfig holds trend listing defaults.
type TrendsConfig struct {
	Limit        int `json:"limit"`
	SidebarLimit int `json:"sidebar_limit"`
}

// PipelineConfig holds handoff settings.
type PipelineConfig struct {
	NavigateDelayMs int      `json:"navigate_delay_ms"`
	Categories      []string `json:"categories"`
}

// UIConfig holds display preferences.
type UIConfig struct {
	// Theme is the fallback when no theme has been persisted yet.
	Theme    string `json:"theme"`
	PageSize int    `json:"page_size"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "http://localhost:5000",
			TimeoutSeconds:    15,
			RequestsPerSecond: 2,
		},
		Trends: TrendsConfig{
			Limit:        20,
			SidebarLimit: 10,
		},
		Pipeline: PipelineConfig{
			NavigateDelayMs: 200,
			Categories:      []string{"tech", "sports", "politics", "economy", "entertainment", "science", "health"},
		},
		UI: UIConfig{
			Theme:    "dark",
			PageSize: 6,
		},
	}
}

// Dir returns ~/.siadash.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".siadash")
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// NavigateDelay returns the delay before navigating after a selection.
func (c *Config) NavigateDelay() time.Duration {
	return time.Duration(c.Pipeline.NavigateDelayMs) * time.Millisecond
}

// Database returns the state database path, defaulting under Dir.
func (c *Config) Database() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(Dir(), "siadash.db")
}

// Load reads the config file at path, or returns defaults when it does not
// exist. A .env file in the working directory is loaded first (existing
// environment variables win), then environment overrides are applied.
func Load(path string) (*Config, error) {
	// Missing .env is the common case.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	cfg.fillZero()
	return cfg, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overlays SIADASH_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SIADASH_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SIADASH_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SIADASH_THEME"); v == "light" || v == "dark" {
		c.UI.Theme = v
	}
	if v := os.Getenv("SIADASH_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil && rps > 0 {
			c.API.RequestsPerSecond = rps
		}
	}
}

// fillZero replaces zero values left by a partial config file.
func (c *Config) fillZero() {
	d := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = d.API.TimeoutSeconds
	}
	if c.API.RequestsPerSecond <= 0 {
		c.API.RequestsPerSecond = d.API.RequestsPerSecond
	}
	if c.Trends.Limit <= 0 {
		c.Trends.Limit = d.Trends.Limit
	}
	if c.Trends.SidebarLimit <= 0 {
		c.Trends.SidebarLimit = d.Trends.SidebarLimit
	}
	if c.Pipeline.NavigateDelayMs <= 0 {
		c.Pipeline.NavigateDelayMs = d.Pipeline.NavigateDelayMs
	}
	if len(c.Pipeline.Categories) == 0 {
		c.Pipeline.Categories = d.Pipeline.Categories
	}
	if c.UI.Theme != "light" && c.UI.Theme != "dark" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.PageSize <= 0 {
		c.UI.PageSize = d.UI.PageSize
	}
}

// Token returns a bearer token supplied through the environment, if any.
// It seeds persisted state on first run.
func Token() string {
	return os.Getenv("SIADASH_TOKEN")
}
