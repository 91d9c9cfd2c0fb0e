package ui

import (
	"strings"

	"github.com/abelbrown/siadash/internal/nav"
	"github.com/abelbrown/siadash/internal/render"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) resetPages() {
	n := len(a.grid.Cards)
	a.pages.SetTotalPages(n)
	if a.cursor >= n {
		a.cursor = max(n-1, 0)
	}
	a.pages.Page = a.cursor / a.pages.PerPage
}

func (a *App) moveCursor(delta int) {
	n := len(a.grid.Cards)
	if n == 0 {
		return
	}
	a.cursor = min(max(a.cursor+delta, 0), n-1)
	a.pages.Page = a.cursor / a.pages.PerPage
}

func (a App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, keys.NextPage):
		a.moveCursor(a.pages.PerPage)
	case key.Matches(msg, keys.PrevPage):
		a.moveCursor(-a.pages.PerPage)

	case key.Matches(msg, keys.Select):
		if act, ok := a.grid.Action(a.cursor); ok {
			return a, func() tea.Msg { return CardActivated{Action: act} }
		}

	case key.Matches(msg, keys.Refresh):
		a.loading = a.cfg.LoadTrends != nil
		return a, a.loadTrends(false)
	case key.Matches(msg, keys.Force):
		a.loading = a.cfg.LoadTrends != nil
		return a, a.loadTrends(true)

	case key.Matches(msg, keys.Keywords):
		a.filtering = true
		a.keywords.Focus()
		return a, nil

	case key.Matches(msg, keys.Pipeline):
		return a, a.navigate(nav.Pipeline)
	}
	return a, nil
}

// updateKeywords edits the keyword filter. Enter saves it and reloads,
// bypassing the backend cache.
func (a App) updateKeywords(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.filtering = false
		a.keywords.Blur()
		return a, nil
	case tea.KeyEnter:
		a.filtering = false
		a.keywords.Blur()
		kw := strings.TrimSpace(a.keywords.Value())
		var save tea.Cmd
		if a.cfg.SaveKeywords != nil {
			save = guard(a.cfg.SaveKeywords(kw))
		}
		a.loading = a.cfg.LoadTrends != nil
		return a, tea.Batch(save, a.loadTrends(true))
	}

	var cmd tea.Cmd
	a.keywords, cmd = a.keywords.Update(msg)
	return a, cmd
}

func (a App) viewDashboard() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Trends"))
	if kw := strings.TrimSpace(a.keywords.Value()); kw != "" && !a.filtering {
		b.WriteString(" ")
		b.WriteString(Muted.Render("keywords: " + kw))
	}
	b.WriteString("\n")
	if a.filtering {
		b.WriteString(FilterBar.Width(max(a.width, 1)).Render(a.keywords.View()))
		b.WriteString("\n")
	}

	from, to := a.pages.GetSliceBounds(len(a.grid.Cards))
	b.WriteString(render.Terminal(a.grid, render.PaletteFor(a.theme), a.width, from, to, a.cursor))
	if a.pages.TotalPages > 1 {
		b.WriteString("\n  ")
		b.WriteString(a.pages.View())
	}
	return b.String()
}
