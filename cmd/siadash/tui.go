package main

import (
	"context"
	"fmt"

	"github.com/abelbrown/siadash/internal/handoff"
	"github.com/abelbrown/siadash/internal/logging"
	"github.com/abelbrown/siadash/internal/nav"
	"github.com/abelbrown/siadash/internal/otel"
	"github.com/abelbrown/siadash/internal/state"
	"github.com/abelbrown/siadash/internal/trend"
	"github.com/abelbrown/siadash/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	st := rt.store
	if openRun && state.Authenticated(st) {
		rt.location.Set(nav.Pipeline)
		rt.location.Pending()
	}
	keywords, err := state.Keywords(st)
	if err != nil {
		logging.Warn("could not read saved keywords", "err", err)
	}

	cfg := ui.AppConfig{
		LoadTrends: func(q trend.Query) tea.Cmd {
			return func() tea.Msg {
				env, ok := rt.client.Trends(ctx, q)
				return ui.TrendsLoaded{Env: env, OK: ok}
			}
		},
		LoadSidebar: func(limit int) tea.Cmd {
			return func() tea.Msg {
				env, ok := rt.client.Trends(ctx, trend.Query{Limit: limit, Flatten: true})
				return ui.SidebarLoaded{List: env.Normalize(), OK: ok}
			}
		},
		Login: func(email, password string) tea.Cmd {
			return func() tea.Msg {
				return ui.LoginDone{Err: rt.client.Login(ctx, email, password)}
			}
		},
		Submit: func(form handoff.Form) tea.Cmd {
			return func() tea.Msg {
				res, err := rt.handoff.Submit(ctx, form)
				return ui.RunDone{Result: res, Err: err}
			}
		},
		SaveKeywords: func(kw string) tea.Cmd {
			return func() tea.Msg {
				return ui.KeywordsSaved{Keywords: kw, Err: state.SetKeywords(st, kw)}
			}
		},
		ToggleTheme: func() tea.Cmd {
			return func() tea.Msg {
				next, err := state.ToggleTheme(st, rt.cfg.UI.Theme)
				return ui.ThemeChanged{Theme: next, Err: err}
			}
		},

		Handoff:  rt.handoff,
		Form:     handoff.NewPipelineForm(rt.cfg.Pipeline.Categories),
		Toasts:   rt.toasts,
		Location: rt.location,
		History:  rt.history,
		Log:      rt.events,

		Theme:        state.Theme(st, rt.cfg.UI.Theme),
		Keywords:     keywords,
		TrendLimit:   rt.cfg.Trends.Limit,
		SidebarLimit: rt.cfg.Trends.SidebarLimit,
		PageSize:     rt.cfg.UI.PageSize,
	}

	program := tea.NewProgram(ui.NewAppWithConfig(cfg), tea.WithAltScreen(), tea.WithContext(ctx))

	// Primary navigation path: deliver the target into the running program.
	rt.location.Attach(func(target string) error {
		if !nav.Known(target) {
			return nav.ErrUnknownTarget
		}
		program.Send(ui.Navigate{Target: target})
		return nil
	})

	if _, err := program.Run(); err != nil {
		rt.events.Error(otel.KindError, "main", err)
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
