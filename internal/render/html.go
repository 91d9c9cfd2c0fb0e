package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

const regionTemplate = `{{if .Banner}}<div class="alert alert-info text-sm"><small>{{.Banner}}</small></div>
{{end}}<div id="{{.ID}}" class="{{if eq .Variant 1}}trend-list{{else}}trends-grid{{end}}">
{{- if .Empty}}
  <div class="text-center text-muted w-100 py-4">{{.Placeholder}}</div>
{{- else if eq .Variant 1}}
{{- range $i, $c := .Cards}}
  <div class="border-bottom pb-2 mb-2 trend-item">
    <strong class="d-block small mb-1" title="{{$c.Title}}">{{$c.Title}}</strong>
    <button class="btn btn-xs btn-link p-0 apply-trend-btn" data-action="apply" data-index="{{$i}}" data-trend="{{payload $c}}">+</button>
    <small class="text-muted d-block">{{$c.Source}}</small>
  </div>
{{- end}}
{{- else}}
{{- range $i, $c := .Cards}}
  <div class="trend-card p-3">
    <div class="trend-header">
      <h6 class="mb-0 text-truncate" title="{{$c.Title}}">{{$c.Title}}</h6>
      <span class="badge bg-light text-dark border">{{$c.Indicator}}</span>
    </div>
    <div class="trend-summary small text-muted mb-2">{{$c.Summary}}</div>
    <div class="trend-meta">
      <span class="badge bg-secondary opacity-75">{{$c.Source}}</span>
      <button class="btn btn-sm btn-outline-primary use-trend-btn" data-action="select" data-index="{{$i}}" data-trend="{{payload $c}}">Use</button>
    </div>
  </div>
{{- end}}
{{- end}}
</div>
`

var regionTmpl = template.Must(template.New("region").Funcs(template.FuncMap{
	// payload is the structured record attached to the card's action,
	// serialized for the data attribute. html/template escapes it for the
	// attribute context.
	"payload": func(c Card) (string, error) {
		b, err := json.Marshal(c.Action.Trend)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
}).Parse(regionTemplate))

// WriteHTML writes the region as HTML markup. All record text is escaped.
func (r *Region) WriteHTML(w io.Writer) error {
	if err := regionTmpl.Execute(w, r); err != nil {
		return fmt.Errorf("render region %s: %w", r.ID, err)
	}
	return nil
}
