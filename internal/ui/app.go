package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/siadash/internal/handoff"
	"github.com/abelbrown/siadash/internal/nav"
	"github.com/abelbrown/siadash/internal/notify"
	"github.com/abelbrown/siadash/internal/otel"
	"github.com/abelbrown/siadash/internal/render"
	"github.com/abelbrown/siadash/internal/state"
	"github.com/abelbrown/siadash/internal/trend"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const comp = "ui"

// tickInterval is how often toasts and fallback navigations are polled.
const tickInterval = 250 * time.Millisecond

type screen int

const (
	screenDashboard screen = iota
	screenPipeline
	screenLogin
)

// AppConfig holds the command functions and shared components the App
// is built from. Nil command functions disable the matching feature.
type AppConfig struct {
	LoadTrends   func(q trend.Query) tea.Cmd
	LoadSidebar  func(limit int) tea.Cmd
	Login        func(email, password string) tea.Cmd
	Submit       func(form handoff.Form) tea.Cmd
	SaveKeywords func(keywords string) tea.Cmd
	ToggleTheme  func() tea.Cmd

	Handoff  *handoff.Controller
	Form     *handoff.PipelineForm
	Toasts   *notify.Center
	Location *nav.Location
	History  *otel.History
	Log      *otel.Logger

	Theme        string
	Keywords     string
	TrendLimit   int
	SidebarLimit int
	PageSize     int
}

// App is the root Bubble Tea model.
// App does not hold the state store; persistence happens in commands and
// in the handoff controller.
type App struct {
	cfg AppConfig

	screen screen
	width  int
	height int
	ready  bool

	loading bool
	spinner spinner.Model
	toasts  []notify.Toast
	theme   string
	debug   bool

	// dashboard
	grid      *render.Region
	cursor    int
	pages     paginator.Model
	keywords  textinput.Model
	filtering bool

	// pipeline
	sidebar    *render.Region
	sideCursor int
	fields     []textinput.Model
	content    textarea.Model
	focus      int // -1 sidebar, otherwise index into formFields
	submitting bool
	lastRun    handoff.RunResult

	// login
	email    textinput.Model
	password textinput.Model
	loginIdx int
}

// formFields is the focus order on the pipeline screen.
var formFields = []string{handoff.FieldTitle, handoff.FieldContent, handoff.FieldCategory, handoff.FieldSourceURL}

// NewAppWithConfig creates an App.
func NewAppWithConfig(cfg AppConfig) App {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 6
	}
	if cfg.SidebarLimit <= 0 {
		cfg.SidebarLimit = render.DefaultSidebarSize
	}
	if cfg.Form == nil {
		cfg.Form = handoff.NewPipelineForm(nil)
	}
	if cfg.Theme == "" {
		cfg.Theme = state.ThemeDark
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = cfg.PageSize

	kw := textinput.New()
	kw.Prompt = "/ "
	kw.Placeholder = "keywords (comma separated)"
	kw.SetValue(cfg.Keywords)

	a := App{
		cfg:      cfg,
		spinner:  s,
		theme:    cfg.Theme,
		grid:     render.NewRegion("trends-grid", render.VariantGrid),
		pages:    p,
		keywords: kw,
		sidebar:  render.NewRegion("pipeline-trends-list", render.VariantSidebar),
		focus:    -1,
		email:    newInput("Email", false),
		password: newInput("Password", true),
		content:  newContentArea(),
	}
	for _, f := range formFields {
		if f == handoff.FieldContent {
			a.fields = append(a.fields, textinput.Model{})
			continue
		}
		a.fields = append(a.fields, newInput(f, false))
	}

	if cfg.Location != nil && cfg.Location.Current() == nav.Login {
		a.screen = screenLogin
		a.email.Focus()
	} else if cfg.Location != nil && cfg.Location.Current() == nav.Pipeline {
		a.screen = screenPipeline
	}
	return a
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func newContentArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Article content"
	ta.ShowLineNumbers = false
	ta.SetHeight(6)
	ta.SetWidth(60)
	return ta
}

// Init starts polling and loads the first screen.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), a.spinner.Tick}
	switch a.screen {
	case screenDashboard:
		cmds = append(cmds, a.loadTrends(false))
	case screenPipeline:
		cmds = append(cmds, a.restore(), a.loadSidebar())
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.content.SetWidth(max(msg.Width/2-16, 20))
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tickMsg:
		a.syncToasts()
		if a.cfg.Location != nil {
			if target, ok := a.cfg.Location.Pending(); ok {
				return a.enter(target, tick())
			}
		}
		return a, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case Navigate:
		return a.enter(msg.Target, nil)

	case TrendsLoaded:
		a.loading = false
		if !msg.OK {
			render.Grid(a.grid, nil, nil)
			a.notify(notify.Warning, "Could not load trends")
		} else {
			render.Grid(a.grid, msg.Env.Normalize(), msg.Env.Attribution())
		}
		a.resetPages()
		return a, nil

	case SidebarLoaded:
		if !msg.OK {
			render.Failed(a.sidebar)
		} else {
			render.Sidebar(a.sidebar, trend.Dedupe(msg.List), a.cfg.SidebarLimit)
		}
		if a.sideCursor >= len(a.sidebar.Cards) {
			a.sideCursor = max(len(a.sidebar.Cards)-1, 0)
		}
		return a, nil

	case CardActivated:
		return a, a.activate(msg.Action)

	case HandoffDone:
		a.syncForm()
		a.syncToasts()
		return a, nil

	case LoginDone:
		a.loading = false
		if msg.Err != nil {
			a.notify(notify.Danger, "Login failed")
			return a, nil
		}
		a.password.SetValue("")
		a.notify(notify.Success, "Signed in")
		return a, a.navigate(nav.Dashboard)

	case RunDone:
		a.submitting = false
		if msg.Result.Status != "" {
			a.lastRun = msg.Result
		}
		if msg.Err == nil {
			a.cfg.Form.Reset()
			a.syncForm()
		}
		a.syncToasts()
		return a, nil

	case ThemeChanged:
		if msg.Err != nil {
			a.notify(notify.Danger, "Could not change theme")
			return a, nil
		}
		a.theme = msg.Theme
		return a, nil

	case KeywordsSaved:
		if msg.Err != nil {
			a.cfg.Log.Error(otel.KindStateError, comp, msg.Err)
		}
		return a, nil

	case panicMsg:
		a.loading = false
		a.submitting = false
		a.cfg.Log.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindPanic, Comp: comp, Err: fmt.Sprint(msg.Value)})
		a.notify(notify.Danger, "An unexpected error occurred")
		return a, nil
	}

	return a, nil
}

// enter switches to the screen for target and starts its loads.
func (a App) enter(target string, then tea.Cmd) (tea.Model, tea.Cmd) {
	a.cfg.Log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindNavigate, Comp: comp, Target: target})
	a.filtering = false
	a.keywords.Blur()

	var cmds []tea.Cmd
	switch target {
	case nav.Login:
		a.screen = screenLogin
		a.loginIdx = 0
		a.email.Focus()
		a.password.Blur()
	case nav.Pipeline:
		a.screen = screenPipeline
		a.setFocus(-1)
		cmds = append(cmds, a.restore(), a.loadSidebar())
	default:
		a.screen = screenDashboard
		if len(a.grid.Cards) == 0 {
			a.loading = a.cfg.LoadTrends != nil
			cmds = append(cmds, a.loadTrends(false))
		}
	}
	cmds = append(cmds, then)
	return a, tea.Batch(cmds...)
}

// navigate moves the shared location to target. When the primary
// mechanism fails the fallback has already recorded the target, and the
// screen is switched directly.
func (a App) navigate(target string) tea.Cmd {
	loc := a.cfg.Location
	return guard(func() tea.Msg {
		if loc == nil {
			return Navigate{Target: target}
		}
		if err := nav.Go(loc, target); err != nil {
			loc.Pending()
			return Navigate{Target: target}
		}
		return nil
	})
}

func (a *App) notify(level notify.Level, msg string) {
	if a.cfg.Toasts == nil {
		return
	}
	a.cfg.Toasts.Notify(level, msg)
	a.syncToasts()
}

// dismissToast removes the newest visible toast.
func (a *App) dismissToast() {
	if a.cfg.Toasts == nil || len(a.toasts) == 0 {
		return
	}
	a.cfg.Toasts.Dismiss(a.toasts[len(a.toasts)-1].ID)
	a.syncToasts()
}

func (a *App) syncToasts() {
	if a.cfg.Toasts == nil {
		return
	}
	a.toasts = a.cfg.Toasts.Active()
}

func (a App) query(force bool) trend.Query {
	return trend.Query{
		Keywords: strings.TrimSpace(a.keywords.Value()),
		Force:    force,
		Limit:    a.cfg.TrendLimit,
		Flatten:  true,
	}
}

func (a App) loadTrends(force bool) tea.Cmd {
	if a.cfg.LoadTrends == nil {
		return nil
	}
	return guard(a.cfg.LoadTrends(a.query(force)))
}

func (a App) loadSidebar() tea.Cmd {
	if a.cfg.LoadSidebar == nil {
		return nil
	}
	return guard(a.cfg.LoadSidebar(a.cfg.SidebarLimit))
}

// activate runs a card action through the handoff controller.
func (a App) activate(act render.Action) tea.Cmd {
	ctrl, form := a.cfg.Handoff, a.cfg.Form
	if ctrl == nil {
		return nil
	}
	a.commitFields()
	return guard(func() tea.Msg {
		switch act.Kind {
		case render.ActionApply:
			return HandoffDone{Err: ctrl.Apply(form, act.Trend)}
		default:
			return HandoffDone{Err: ctrl.Select(act.Trend)}
		}
	})
}

func (a App) restore() tea.Cmd {
	ctrl, form := a.cfg.Handoff, a.cfg.Form
	if ctrl == nil {
		return nil
	}
	return guard(func() tea.Msg {
		_, err := ctrl.Restore(form)
		return HandoffDone{Err: err}
	})
}

func (a App) clearSelection() tea.Cmd {
	form := a.cfg.Form
	return guard(func() tea.Msg {
		form.ClearSelection()
		return HandoffDone{}
	})
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.screen {
	case screenLogin:
		return a.updateLogin(msg)
	case screenPipeline:
		if a.focus >= 0 {
			return a.updateField(msg)
		}
	case screenDashboard:
		if a.filtering {
			return a.updateKeywords(msg)
		}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Debug):
		a.debug = !a.debug
		return a, nil
	case key.Matches(msg, keys.Dismiss):
		a.dismissToast()
		return a, nil
	case key.Matches(msg, keys.Theme):
		if a.cfg.ToggleTheme != nil {
			return a, guard(a.cfg.ToggleTheme())
		}
		return a, nil
	}

	if a.screen == screenPipeline {
		return a.updatePipeline(msg)
	}
	return a.updateDashboard(msg)
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.debug {
		return debugOverlay(a.cfg.History, a.width, a.height) + "\n" + debugStatusBar(a.width)
	}

	var body string
	switch a.screen {
	case screenLogin:
		body = a.viewLogin()
	case screenPipeline:
		body = a.viewPipeline()
	default:
		body = a.viewDashboard()
	}

	var b strings.Builder
	b.WriteString(body)
	for _, t := range a.toasts {
		b.WriteString("\n")
		b.WriteString(ToastStyle(t.Level).Render(t.Message))
	}
	b.WriteString("\n")
	b.WriteString(a.statusBar())
	return b.String()
}

func (a App) statusBar() string {
	var hints [][2]string
	switch a.screen {
	case screenLogin:
		hints = [][2]string{{"tab", "field"}, {"enter", "sign in"}, {"ctrl+c", "quit"}}
	case screenPipeline:
		if a.focus >= 0 {
			hints = [][2]string{{"tab", "next"}, {"esc", "done"}, {"ctrl+s", "run"}}
		} else {
			hints = [][2]string{{"enter", "apply"}, {"x", "clear"}, {"tab", "edit"}, {"s", "run"}, {"b", "back"}, {"z", "dismiss"}, {"t", "theme"}}
		}
	default:
		hints = [][2]string{{"enter", "select"}, {"r", "refresh"}, {"f", "force"}, {"/", "keywords"}, {"p", "pipeline"}, {"z", "dismiss"}, {"t", "theme"}, {"q", "quit"}}
	}

	parts := make([]string, 0, len(hints)+1)
	if a.loading || a.submitting {
		parts = append(parts, a.spinner.View())
	}
	for _, h := range hints {
		parts = append(parts, StatusBarKey.Render(h[0])+StatusBarText.Render(":"+h[1]))
	}
	return StatusBar.Width(max(a.width, 1)).Render(strings.Join(parts, "  "))
}

// Screen returns the current screen's location (for testing).
func (a App) Screen() string {
	switch a.screen {
	case screenLogin:
		return nav.Login
	case screenPipeline:
		return nav.Pipeline
	}
	return nav.Dashboard
}

// Cursor returns the dashboard cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Grid returns the dashboard region (for testing).
func (a App) Grid() *render.Region {
	return a.grid
}

// Sidebar returns the pipeline sidebar region (for testing).
func (a App) Sidebar() *render.Region {
	return a.sidebar
}

// Theme returns the active theme.
func (a App) Theme() string {
	return a.theme
}
