// Package handoff moves a selected trend from the dashboard to the
// pipeline form, either by persisting it and navigating to the pipeline
// screen or by copying it into the form in place.
//
// Every failure is logged, shown as a danger toast and returned. Nothing
// here panics on bad input.
package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/siadash/internal/format"
	"github.com/abelbrown/siadash/internal/nav"
	"github.com/abelbrown/siadash/internal/notify"
	"github.com/abelbrown/siadash/internal/otel"
	"github.com/abelbrown/siadash/internal/state"
	"github.com/abelbrown/siadash/internal/trend"
)

const comp = "handoff"

// DefaultNavigateDelay gives the selection toast time to show before the
// screen changes.
const DefaultNavigateDelay = 200 * time.Millisecond

// RunEndpoint starts a pipeline run for an article.
const RunEndpoint = "/api/ui/run"

// ErrRunFailed is returned by Submit when the backend rejects the run or
// cannot be reached.
var ErrRunFailed = errors.New("handoff: pipeline run failed")

// Scheduler runs f after d. time.AfterFunc is the production scheduler.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Poster sends a JSON body and returns the JSON reply or nil.
// *api.Client satisfies it.
type Poster interface {
	Post(ctx context.Context, endpoint string, body any) json.RawMessage
}

// Controller performs handoffs.
type Controller struct {
	store    state.Store
	notifier notify.Notifier
	nav      nav.Navigator
	poster   Poster
	schedule Scheduler
	delay    time.Duration
	log      *otel.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the select-to-navigate delay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithScheduler replaces time.AfterFunc.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.schedule = s }
}

// WithPoster sets the client Submit posts through.
func WithPoster(p Poster) Option {
	return func(c *Controller) { c.poster = p }
}

// WithLogger attaches the event logger.
func WithLogger(l *otel.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New creates a Controller.
func New(store state.Store, notifier notify.Notifier, navigator nav.Navigator, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		notifier: notifier,
		nav:      navigator,
		schedule: afterFunc,
		delay:    DefaultNavigateDelay,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// fail logs err, shows msg as a danger toast and returns err.
func (c *Controller) fail(msg string, err error) error {
	c.log.Error(otel.KindHandoffError, comp, err)
	c.notifier.Notify(notify.Danger, msg)
	return err
}

// Select persists t and navigates to the pipeline screen after the
// configured delay. The selection is durable before the navigation is
// scheduled.
func (c *Controller) Select(t trend.Trend) error {
	if err := SaveSelection(c.store, t); err != nil {
		return c.fail("Could not select trend", err)
	}
	c.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindTrendSelected, Comp: comp, Msg: t.Title, Source: t.SourceLabel()})
	c.notifier.Notify(notify.Success, "Trend selected: "+t.Title)

	c.schedule(c.delay, func() {
		err := nav.Go(c.nav, nav.Pipeline)
		if err != nil {
			c.log.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindNavigateFall, Comp: comp, Target: nav.Pipeline, Err: err.Error()})
			return
		}
		c.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindNavigate, Comp: comp, Target: nav.Pipeline})
	})
	return nil
}

// Content builds the content field for t: the summary followed by the
// source attribution, or "" when t has no summary.
func Content(t trend.Trend) string {
	if strings.TrimSpace(t.Summary) == "" {
		return ""
	}
	return t.Summary + "\n\nSource: " + t.Source
}

// Fill copies t into f. A field is written only when t supplies a
// non-empty value for it; a category is written only when f offers it.
func Fill(f Form, t trend.Trend) {
	if t.Title != "" {
		f.SetValue(FieldTitle, t.Title)
	}
	if content := Content(t); content != "" {
		f.SetValue(FieldContent, content)
	}
	if t.Category != "" {
		for _, opt := range f.Options(FieldCategory) {
			if opt == t.Category {
				f.SetValue(FieldCategory, t.Category)
				break
			}
		}
	}
	if t.URL != "" {
		f.SetValue(FieldSourceURL, t.URL)
	}
}

// Apply copies t into f without navigating, persists it as the current
// selection and shows the confirmation banner, whose clear control
// removes the selection again. A record without a title still fills the
// fields it has, but is not persisted and gets no banner.
func (c *Controller) Apply(f Form, t trend.Trend) error {
	Fill(f, t)
	if strings.TrimSpace(t.Title) == "" {
		c.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindTrendApplied, Comp: comp, Source: t.SourceLabel()})
		c.notifier.Notify(notify.Info, "Trend loaded into form")
		return nil
	}
	if err := SaveSelection(c.store, t); err != nil {
		return c.fail("Could not load trend into form", err)
	}

	f.ShowBanner(fmt.Sprintf("Trend preloaded: %s (%s)", t.Title, t.SourceLabel()), func() {
		c.Clear(f)
	})
	c.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindTrendApplied, Comp: comp, Msg: t.Title, Source: t.SourceLabel()})
	c.notifier.Notify(notify.Success, "Trend loaded into form: "+t.Title)
	return nil
}

// Restore applies the persisted selection to f, if there is one. It
// reports whether a selection was applied.
func (c *Controller) Restore(f Form) (bool, error) {
	t, err := LoadSelection(c.store)
	if errors.Is(err, ErrEmptySelection) {
		return false, nil
	}
	if err != nil {
		return false, c.fail("Could not load trend into form", err)
	}
	if err := c.Apply(f, t); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes the persisted selection and hides the banner.
func (c *Controller) Clear(f Form) error {
	if err := ClearSelection(c.store); err != nil {
		return c.fail("Could not clear selection", err)
	}
	if f != nil {
		f.HideBanner()
	}
	c.log.Info(otel.KindSelectionClear, comp, "selection cleared")
	c.notifier.Notify(notify.Info, "Selection cleared")
	return nil
}

// RunResult is the backend's reply to a pipeline run.
type RunResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Submit posts the form's article to the pipeline.
func (c *Controller) Submit(ctx context.Context, f Form) (RunResult, error) {
	a := ArticleFrom(f)
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Content) == "" {
		c.notifier.Notify(notify.Warning, "Title and content are required")
		return RunResult{}, fmt.Errorf("%w: missing title or content", ErrRunFailed)
	}
	if u := strings.TrimSpace(a.SourceURL); u != "" && !format.ValidURL(u) {
		c.notifier.Notify(notify.Warning, "Source URL must be an absolute URL")
		return RunResult{}, fmt.Errorf("%w: invalid source url %q", ErrRunFailed, a.SourceURL)
	}
	if c.poster == nil {
		return RunResult{}, c.fail("Pipeline is not available", fmt.Errorf("%w: no client", ErrRunFailed))
	}

	body := c.poster.Post(ctx, RunEndpoint, a)
	if body == nil {
		return RunResult{}, c.fail("Pipeline run failed", ErrRunFailed)
	}

	var res RunResult
	if err := json.Unmarshal(body, &res); err != nil {
		return RunResult{}, c.fail("Pipeline run failed", fmt.Errorf("%w: %v", ErrRunFailed, err))
	}
	if res.Status != "success" {
		msg := res.Error
		if msg == "" {
			msg = res.Status
		}
		return res, c.fail("Pipeline run failed: "+msg, fmt.Errorf("%w: %s", ErrRunFailed, msg))
	}

	c.notifier.Notify(notify.Success, "Pipeline started: "+a.Title)
	return res, nil
}
