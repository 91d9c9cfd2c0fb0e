package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/abelbrown/siadash/internal/api"
	"github.com/abelbrown/siadash/internal/config"
	"github.com/abelbrown/siadash/internal/handoff"
	"github.com/abelbrown/siadash/internal/logging"
	"github.com/abelbrown/siadash/internal/nav"
	"github.com/abelbrown/siadash/internal/notify"
	"github.com/abelbrown/siadash/internal/otel"
	"github.com/abelbrown/siadash/internal/state"
	"github.com/charmbracelet/log"
)

// app is the wired set of components every command shares.
type app struct {
	cfg      *config.Config
	store    *state.SQLite
	events   *otel.Logger
	eventsF  *os.File
	history  *otel.History
	location *nav.Location
	toasts   *notify.Center
	client   *api.Client
	handoff  *handoff.Controller
}

// eventLogPath returns the path to siadash.events.jsonl.
func eventLogPath() string {
	return filepath.Join(config.Dir(), "siadash.events.jsonl")
}

func openApp(cfgPath, baseURL string, verbose bool) (*app, error) {
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	if err := os.MkdirAll(config.Dir(), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if err := logging.Init(config.Dir(), level); err != nil {
		return nil, err
	}

	rt := &app{cfg: cfg, history: otel.NewHistory(0)}

	rt.eventsF, err = os.OpenFile(eventLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logging.Warn("event log unavailable", "err", err)
		rt.events = otel.NewNullLogger()
	} else {
		rt.events = otel.NewLogger(rt.eventsF)
	}
	rt.events.SetHistory(rt.history)
	rt.events.Info(otel.KindStartup, "main", cfg.API.BaseURL)

	rt.store, err = state.Open(cfg.Database())
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open state: %w", err)
	}
	if tok := config.Token(); tok != "" && !state.Authenticated(rt.store) {
		if err := state.SetToken(rt.store, tok); err != nil {
			logging.Warn("could not seed token", "err", err)
		}
	}

	start := nav.Dashboard
	if !state.Authenticated(rt.store) {
		start = nav.Login
	}
	rt.location = nav.NewLocation(start)
	rt.toasts = notify.NewCenter(notify.DefaultTTL)

	rt.client = api.NewClient(cfg.API.BaseURL, rt.store, rt.location,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		api.WithRateLimit(cfg.API.RequestsPerSecond),
		api.WithLogger(rt.events))

	rt.handoff = handoff.New(rt.store, rt.toasts, rt.location,
		handoff.WithDelay(cfg.NavigateDelay()),
		handoff.WithPoster(rt.client),
		handoff.WithLogger(rt.events))

	logging.Debug("runtime ready", "base_url", cfg.API.BaseURL, "db", cfg.Database(), "start", start)
	return rt, nil
}

// Close flushes the event log and closes the store. Safe on nil.
func (rt *app) Close() {
	if rt == nil {
		return
	}
	rt.events.Info(otel.KindShutdown, "main", "")
	rt.events.Close()
	if rt.eventsF != nil {
		rt.eventsF.Close()
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			logging.Error("close state", "err", err)
		}
	}
	logging.Close()
}

// printToasts writes the notifications a command produced to stderr.
func (rt *app) printToasts() {
	for _, t := range rt.toasts.Active() {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", t.Level, t.Message)
	}
}
