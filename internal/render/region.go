// Package render turns a normalized trend list into a display region: a
// grid of cards for the dashboard or a short list for the pipeline
// sidebar.
//
// A Region is a plain view model. Text fields hold unescaped text;
// escaping happens in the writers (WriteHTML uses html/template, the
// terminal writer never interprets markup). Each card carries the original
// record in its Action, so selecting a card never re-parses display text.
package render

import (
	"html"
	"strings"

	"github.com/abelbrown/siadash/internal/trend"
	"github.com/microcosm-cc/bluemonday"
)

// Display constants.
const (
	SummaryLimit       = 100
	Ellipsis           = "..."
	NoSummary          = "No summary"
	NoIndicator        = "N/A"
	GridPlaceholder    = "No trends found"
	SidebarPlaceholder = "No trends available."
	FailedPlaceholder  = "Failed to load."
	DefaultSidebarSize = 10
)

// Variant distinguishes the two region layouts.
type Variant int

const (
	VariantGrid Variant = iota
	VariantSidebar
)

// ActionKind is what activating a card does.
type ActionKind int

const (
	// ActionSelect persists the record and navigates to the pipeline.
	ActionSelect ActionKind = iota
	// ActionApply copies the record into the pipeline form in place.
	ActionApply
)

func (k ActionKind) String() string {
	if k == ActionApply {
		return "apply"
	}
	return "select"
}

// Action is the single action a card exposes.
type Action struct {
	Kind  ActionKind
	Trend trend.Trend
}

// Card is one rendered record.
type Card struct {
	Title     string
	Summary   string
	Source    string
	Indicator string
	Action    Action
}

// Region is a display area whose contents each render replaces.
type Region struct {
	ID      string
	Variant Variant

	// Banner is the source attribution line. It lives outside the card
	// list, so a render replaces it rather than appending a second one.
	Banner string

	// Placeholder is set instead of Cards when there is nothing to show.
	Placeholder string
	Cards       []Card
}

// NewRegion returns an empty region.
func NewRegion(id string, v Variant) *Region {
	return &Region{ID: id, Variant: v}
}

// Empty reports whether the region shows a placeholder.
func (r *Region) Empty() bool {
	return len(r.Cards) == 0
}

// Grid replaces the region with one card per record. The attribution
// banner is recomputed on every call and shown only for a non-empty list
// with more than one distinct source.
func Grid(r *Region, list []trend.Trend, sources []string) {
	r.Variant = VariantGrid
	r.Cards = nil
	r.Placeholder = ""
	r.Banner = ""

	if len(list) == 0 {
		r.Placeholder = GridPlaceholder
		return
	}

	if names := distinct(sources); len(names) > 1 {
		r.Banner = "Trends from: " + strings.Join(names, ", ")
	}

	r.Cards = make([]Card, 0, len(list))
	for _, t := range list {
		r.Cards = append(r.Cards, Card{
			Title:     t.Title,
			Summary:   Summary(t.Summary),
			Source:    t.SourceLabel(),
			Indicator: indicator(t),
			Action:    Action{Kind: ActionSelect, Trend: t},
		})
	}
}

// Sidebar replaces the region with at most limit compact entries that
// apply directly to the pipeline form. limit <= 0 means
// DefaultSidebarSize.
func Sidebar(r *Region, list []trend.Trend, limit int) {
	r.Variant = VariantSidebar
	r.Cards = nil
	r.Placeholder = ""
	r.Banner = ""

	if limit <= 0 {
		limit = DefaultSidebarSize
	}
	if len(list) == 0 {
		r.Placeholder = SidebarPlaceholder
		return
	}
	if len(list) > limit {
		list = list[:limit]
	}

	r.Cards = make([]Card, 0, len(list))
	for _, t := range list {
		r.Cards = append(r.Cards, Card{
			Title:  t.Title,
			Source: t.SourceLabel(),
			Action: Action{Kind: ActionApply, Trend: t},
		})
	}
}

// Failed replaces the region with the load-failure placeholder.
func Failed(r *Region) {
	r.Cards = nil
	r.Banner = ""
	r.Placeholder = FailedPlaceholder
}

// Action returns the action of card i.
func (r *Region) Action(i int) (Action, bool) {
	if i < 0 || i >= len(r.Cards) {
		return Action{}, false
	}
	return r.Cards[i].Action, true
}

var textPolicy = bluemonday.StrictPolicy()

// Summary strips markup from s, collapses whitespace and truncates it to
// SummaryLimit runes plus an ellipsis. Empty input yields NoSummary.
func Summary(s string) string {
	plain := html.UnescapeString(textPolicy.Sanitize(s))
	plain = strings.Join(strings.Fields(plain), " ")
	if plain == "" {
		return NoSummary
	}
	return Truncate(plain, SummaryLimit)
}

// Truncate cuts s to n runes and appends Ellipsis when it was longer.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + Ellipsis
}

func indicator(t trend.Trend) string {
	if s := t.Indicator().String(); s != "" {
		return s
	}
	return NoIndicator
}

func distinct(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
