package ui

import tea "github.com/charmbracelet/bubbletea"

// guard turns a panic inside cmd into a panicMsg, which Update reports
// as a generic failure toast. Expected failures are handled where they
// happen; this is the last resort.
func guard(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = panicMsg{Value: r}
			}
		}()
		return cmd()
	}
}
