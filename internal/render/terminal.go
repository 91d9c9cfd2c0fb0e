package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the terminal styles for one theme.
type Palette struct {
	Banner      lipgloss.Style
	Placeholder lipgloss.Style
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Summary     lipgloss.Style
	Source      lipgloss.Style
	Indicator   lipgloss.Style
	Card        lipgloss.Style
	ActiveCard  lipgloss.Style
}

// DarkPalette is the default terminal theme.
var DarkPalette = newPalette(lipgloss.Color("255"), lipgloss.Color("240"), lipgloss.Color("62"), lipgloss.Color("236"))

// LightPalette is used when the persisted theme is "light".
var LightPalette = newPalette(lipgloss.Color("232"), lipgloss.Color("244"), lipgloss.Color("25"), lipgloss.Color("254"))

func newPalette(fg, muted, accent, badge lipgloss.Color) Palette {
	return Palette{
		Banner:      lipgloss.NewStyle().Foreground(accent).Italic(true).Padding(0, 1),
		Placeholder: lipgloss.NewStyle().Foreground(muted).Padding(1, 2),
		Title:       lipgloss.NewStyle().Foreground(fg).Bold(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(accent).Bold(true),
		Summary:     lipgloss.NewStyle().Foreground(muted),
		Source:      lipgloss.NewStyle().Foreground(accent).Background(badge).Padding(0, 1),
		Indicator:   lipgloss.NewStyle().Foreground(fg).Background(badge).Padding(0, 1),
		Card:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		ActiveCard:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
	}
}

// PaletteFor returns the palette for a theme name.
func PaletteFor(theme string) Palette {
	if theme == "light" {
		return LightPalette
	}
	return DarkPalette
}

// Terminal renders cards [from, to) of the region for a terminal of the
// given width, highlighting card cursor. Record text is passed through
// sanitizeTerminal so control sequences in trend data cannot reach the
// terminal.
func Terminal(r *Region, p Palette, width, from, to, cursor int) string {
	var b strings.Builder

	if r.Banner != "" {
		b.WriteString(p.Banner.Render(sanitizeTerminal(r.Banner)))
		b.WriteString("\n")
	}
	if r.Empty() {
		b.WriteString(p.Placeholder.Render(r.Placeholder))
		return b.String()
	}

	if from < 0 {
		from = 0
	}
	if to > len(r.Cards) || to <= 0 {
		to = len(r.Cards)
	}
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	for i := from; i < to; i++ {
		c := r.Cards[i]
		title := Truncate(sanitizeTerminal(c.Title), inner-2)

		if r.Variant == VariantSidebar {
			marker := "  "
			style := p.Title
			if i == cursor {
				marker = "+ "
				style = p.Selected
			}
			b.WriteString(style.Render(marker + title))
			b.WriteString("\n  ")
			b.WriteString(p.Summary.Render(sanitizeTerminal(c.Source)))
			b.WriteString("\n")
			continue
		}

		head := p.Title.Render(title)
		if i == cursor {
			head = p.Selected.Render(title)
		}
		meta := lipgloss.JoinHorizontal(lipgloss.Top,
			p.Source.Render(sanitizeTerminal(c.Source)), " ",
			p.Indicator.Render(sanitizeTerminal(c.Indicator)))
		body := lipgloss.JoinVertical(lipgloss.Left,
			head,
			p.Summary.Width(inner).Render(sanitizeTerminal(c.Summary)),
			meta)

		box := p.Card
		if i == cursor {
			box = p.ActiveCard
		}
		b.WriteString(box.Width(inner).Render(body))
		b.WriteString("\n")
	}
	return b.String()
}

// sanitizeTerminal drops control characters (escape sequences included)
// and flattens newlines.
func sanitizeTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			return ' '
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			return -1
		}
		return r
	}, s)
}
