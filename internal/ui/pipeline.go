package ui

import (
	"strings"

	"github.com/abelbrown/siadash/internal/format"
	"github.com/abelbrown/siadash/internal/handoff"
	"github.com/abelbrown/siadash/internal/nav"
	"github.com/abelbrown/siadash/internal/render"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// setFocus moves form focus; -1 focuses the sidebar.
func (a *App) setFocus(i int) {
	for j := range a.fields {
		a.fields[j].Blur()
	}
	a.content.Blur()
	a.focus = i
	if i < 0 {
		return
	}
	if formFields[i] == handoff.FieldContent {
		a.content.Focus()
		return
	}
	a.fields[i].Focus()
}

// syncForm copies the form's values into the inputs.
func (a *App) syncForm() {
	for i, f := range formFields {
		v := a.cfg.Form.Value(f)
		if f == handoff.FieldContent {
			a.content.SetValue(v)
			continue
		}
		a.fields[i].SetValue(v)
	}
}

// commitFields writes the inputs back into the form. A category outside
// the form's options is dropped by the form, so the input is re-synced.
func (a App) commitFields() {
	for i, f := range formFields {
		if f == handoff.FieldContent {
			a.cfg.Form.SetValue(f, a.content.Value())
			continue
		}
		a.cfg.Form.SetValue(f, strings.TrimSpace(a.fields[i].Value()))
	}
}

func (a App) submit() (tea.Model, tea.Cmd) {
	a.commitFields()
	a.syncForm()
	if a.cfg.Submit == nil || a.submitting {
		return a, nil
	}
	a.submitting = true
	return a, guard(a.cfg.Submit(a.cfg.Form))
}

func (a App) updatePipeline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Down):
		if a.sideCursor < len(a.sidebar.Cards)-1 {
			a.sideCursor++
		}
	case key.Matches(msg, keys.Up):
		if a.sideCursor > 0 {
			a.sideCursor--
		}
	case key.Matches(msg, keys.Select), key.Matches(msg, keys.Apply):
		if act, ok := a.sidebar.Action(a.sideCursor); ok {
			return a, func() tea.Msg { return CardActivated{Action: act} }
		}
	case key.Matches(msg, keys.Clear):
		return a, a.clearSelection()
	case key.Matches(msg, keys.Submit):
		return a.submit()
	case key.Matches(msg, keys.Refresh):
		return a, a.loadSidebar()
	case key.Matches(msg, keys.Focus):
		a.setFocus(0)
	case key.Matches(msg, keys.Back):
		return a, a.navigate(nav.Dashboard)
	}
	return a, nil
}

// updateField edits the focused form field.
func (a App) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.commitFields()
		a.syncForm()
		a.setFocus(-1)
		return a, nil
	case "tab", "shift+tab":
		a.commitFields()
		a.syncForm()
		next := a.focus + 1
		if msg.String() == "shift+tab" {
			next = a.focus - 1
		}
		if next >= len(formFields) || next < 0 {
			next = -1
		}
		a.setFocus(next)
		return a, nil
	case "ctrl+s":
		return a.submit()
	}

	var cmd tea.Cmd
	if formFields[a.focus] == handoff.FieldContent {
		a.content, cmd = a.content.Update(msg)
	} else {
		a.fields[a.focus], cmd = a.fields[a.focus].Update(msg)
	}
	return a, cmd
}

func (a App) viewPipeline() string {
	var form strings.Builder
	form.WriteString(PanelTitle.Render("Run pipeline"))
	form.WriteString("\n")
	if text, on := a.cfg.Form.Banner(); on {
		form.WriteString(SelectionBanner.Render(text + "  [x] clear"))
		form.WriteString("\n\n")
	}
	for i, f := range formFields {
		label := FieldLabel.Render(f)
		if i == a.focus {
			label = FocusedLabel.Render(f)
		}
		if f == handoff.FieldContent {
			form.WriteString(label + "\n" + a.content.View() + "\n")
			continue
		}
		form.WriteString(label + a.fields[i].View() + "\n")
		if f == handoff.FieldCategory {
			form.WriteString(Muted.Render("            " + strings.Join(a.cfg.Form.Options(f), " | ")))
			form.WriteString("\n")
		}
	}

	if st := a.lastRun.Status; st != "" {
		form.WriteString("\n" + FieldLabel.Render("last run") + BadgeStyle(format.StatusBadge(st)).Render(st))
		if a.lastRun.Message != "" {
			form.WriteString(" " + Muted.Render(a.lastRun.Message))
		}
		form.WriteString("\n")
	}

	cursor := a.sideCursor
	if a.focus >= 0 {
		cursor = -1
	}
	side := PanelTitle.Render("Trends") + "\n" +
		render.Terminal(a.sidebar, render.PaletteFor(a.theme), a.width/2, 0, 0, cursor)

	leftWidth := max(a.width/2, 30)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Render(form.String()),
		lipgloss.NewStyle().Width(max(a.width-leftWidth-2, 20)).Render(side))
}
