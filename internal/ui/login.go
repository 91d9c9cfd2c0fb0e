package ui

import (
	"strings"

	"github.com/abelbrown/siadash/internal/format"
	"github.com/abelbrown/siadash/internal/notify"
	tea "github.com/charmbracelet/bubbletea"
)

func (a App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		a.loginIdx = 1 - a.loginIdx
		if a.loginIdx == 0 {
			a.password.Blur()
			a.email.Focus()
		} else {
			a.email.Blur()
			a.password.Focus()
		}
		return a, nil

	case "enter":
		email := strings.TrimSpace(a.email.Value())
		if !format.ValidEmail(email) {
			a.notify(notify.Warning, "Enter a valid email address")
			return a, nil
		}
		if a.password.Value() == "" {
			a.notify(notify.Warning, "Enter your password")
			return a, nil
		}
		if a.cfg.Login == nil || a.loading {
			return a, nil
		}
		a.loading = true
		return a, guard(a.cfg.Login(email, a.password.Value()))

	case "esc":
		return a, tea.Quit
	}

	var cmd tea.Cmd
	if a.loginIdx == 0 {
		a.email, cmd = a.email.Update(msg)
	} else {
		a.password, cmd = a.password.Update(msg)
	}
	return a, cmd
}

func (a App) viewLogin() string {
	emailLabel, passLabel := FocusedLabel.Render("email"), FieldLabel.Render("password")
	if a.loginIdx == 1 {
		emailLabel, passLabel = FieldLabel.Render("email"), FocusedLabel.Render("password")
	}
	view := HeaderStyle.Render("Sign in") + "\n\n" +
		emailLabel + a.email.View() + "\n" +
		passLabel + a.password.View() + "\n"
	if p := a.password.Value(); p != "" {
		view += FieldLabel.Render("strength") + strengthMeter(format.PasswordStrength(p)) + "\n"
	}
	return view
}

// strengthMeter draws a five-step bar for a PasswordStrength score.
func strengthMeter(score int) string {
	score = min(max(score, 0), maxStrength)
	return StatusBarKey.Render(strings.Repeat("■", score)) + Muted.Render(strings.Repeat("□", maxStrength-score))
}

const maxStrength = 5
