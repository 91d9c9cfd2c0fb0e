package handoff

import (
	"slices"
	"sync"
)

// Pipeline form field names.
const (
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldCategory  = "category"
	FieldSourceURL = "source_url"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldTitle, FieldContent, FieldCategory, FieldSourceURL}

// Form is the set of named fields apply-in-place writes into, plus the
// confirmation banner shown above them.
type Form interface {
	Value(field string) string
	SetValue(field, value string)
	// Options returns the allowed values of a choice field, nil for free
	// text fields.
	Options(field string) []string
	ShowBanner(text string, onClear func())
	HideBanner()
}

// PipelineForm is the article form on the pipeline screen.
type PipelineForm struct {
	mu         sync.Mutex
	values     map[string]string
	categories []string
	banner     string
	bannerOn   bool
	onClear    func()
}

var _ Form = (*PipelineForm)(nil)

// NewPipelineForm creates an empty form whose category field accepts
// categories.
func NewPipelineForm(categories []string) *PipelineForm {
	return &PipelineForm{
		values:     make(map[string]string, len(Fields)),
		categories: slices.Clone(categories),
	}
}

func (f *PipelineForm) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// SetValue writes a field. A category outside the allowed options is
// ignored, like a select element would.
func (f *PipelineForm) SetValue(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if field == FieldCategory && value != "" && !slices.Contains(f.categories, value) {
		return
	}
	f.values[field] = value
}

func (f *PipelineForm) Options(field string) []string {
	if field != FieldCategory {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.categories)
}

func (f *PipelineForm) ShowBanner(text string, onClear func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banner = text
	f.bannerOn = true
	f.onClear = onClear
}

func (f *PipelineForm) HideBanner() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bannerOn = false
}

// Banner returns the banner text and whether it is visible.
func (f *PipelineForm) Banner() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner, f.bannerOn
}

// ClearSelection activates the banner's clear control. It reports false
// when no control is wired.
func (f *PipelineForm) ClearSelection() bool {
	f.mu.Lock()
	fn := f.onClear
	f.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Reset empties every field.
func (f *PipelineForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.values)
}

// Article is the payload submitted to the pipeline.
type Article struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

// ArticleFrom reads the submit payload out of a form.
func ArticleFrom(f Form) Article {
	return Article{
		Title:     f.Value(FieldTitle),
		Content:   f.Value(FieldContent),
		Category:  f.Value(FieldCategory),
		SourceURL: f.Value(FieldSourceURL),
	}
}
