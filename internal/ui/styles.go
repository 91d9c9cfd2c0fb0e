package ui

import (
	"github.com/abelbrown/siadash/internal/format"
	"github.com/abelbrown/siadash/internal/notify"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")
	colorWarning   = lipgloss.Color("214")
	colorDanger    = lipgloss.Color("196")
	colorInfo      = lipgloss.Color("39")
)

// HeaderStyle for the screen title line.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// FilterBar style for the keyword input bar.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// FieldLabel style for form labels.
var FieldLabel = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Width(12)

// FocusedLabel style for the label of the focused field.
var FocusedLabel = FieldLabel.
	Foreground(colorHighlight).
	Bold(true)

// SelectionBanner style for the "Trend preloaded" banner.
var SelectionBanner = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorInfo).
	Padding(0, 1)

// PanelTitle style for sidebar and form headings.
var PanelTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginBottom(1)

// DebugPanel style for the event overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle for section headings in the event overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

var toastBase = lipgloss.NewStyle().
	Foreground(lipgloss.Color("232")).
	Bold(true).
	Padding(0, 1)

// ToastStyle returns the style for a toast level.
func ToastStyle(level notify.Level) lipgloss.Style {
	switch level {
	case notify.Success:
		return toastBase.Background(colorSuccess)
	case notify.Warning:
		return toastBase.Background(colorWarning)
	case notify.Danger:
		return toastBase.Foreground(lipgloss.Color("255")).Background(colorDanger)
	}
	return toastBase.Background(colorInfo)
}

// BadgeStyle returns the style for a status badge. Badge levels share the
// toast palette; anything else renders gray.
func BadgeStyle(b format.Badge) lipgloss.Style {
	switch b {
	case format.BadgeSuccess, format.BadgeInfo, format.BadgeWarning, format.BadgeDanger:
		return ToastStyle(notify.Level(b))
	}
	return toastBase.Foreground(lipgloss.Color("255")).Background(colorSecondary)
}

// Muted style for secondary text.
var Muted = lipgloss.NewStyle().Foreground(colorMuted)
