package rendering

import (
	"bytes"
	"html/template"

	"github.com/jonathan/skillscan/internal/types"
)

const blocksTemplate = `{{define "plan"}}<div class="study-plan">
{{- range .}}
{{template "block" .}}
{{- end}}
</div>{{end}}

{{define "block"}}
{{- if eq .Kind "heading"}}<h2>{{.Text}}</h2>
{{- else if eq .Kind "week_header"}}<h3 class="week"><span class="week-number">Week {{.WeekNumber}}</span> {{.Title}}</h3>
{{- else if eq .Kind "labeled_field"}}<p class="field"><strong>{{.Label}}:</strong> {{.Content}}</p>
{{- else if eq .Kind "section_label"}}<h4>{{.Text}}</h4>
{{- else if eq .Kind "resource_item"}}<li class="resource resource-{{.Resource}}"><span class="resource-kind">{{.Resource}}</span> {{.Content}}</li>
{{- else if eq .Kind "bullet_item"}}<li>{{.Content}}</li>
{{- else if eq .Kind "numbered_item"}}<li class="numbered" value="{{.Index}}">{{.Content}}</li>
{{- else if eq .Kind "blank"}}<br>
{{- else}}<p>{{.Text}}</p>
{{- end}}
{{- end}}

{{define "analysis"}}<div class="analysis">
{{- range .}}
{{- if eq .Kind "heading"}}
<h2>{{.Text}}</h2>
{{- else if eq .Kind "section"}}
<h3 class="section"><span class="section-number">{{.Number}}</span> {{.Text}}</h3>
{{- else}}
<p>{{range .Spans}}{{if .Bold}}<strong>{{.Text}}</strong>{{else}}{{.Text}}{{end}}{{end}}</p>
{{- end}}
{{- end}}
</div>{{end}}`

var templates = template.Must(template.New("rendering").Parse(blocksTemplate))

// HTML renders classified blocks as an HTML fragment. Text is escaped.
func HTML(blocks []types.Block) (string, error) {
	return execute("plan", blocks)
}

// AnalysisHTML renders an analysis report as an HTML fragment.
func AnalysisHTML(text string) (string, error) {
	return execute("analysis", ParseAnalysis(text))
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", &TemplateError{Message: "failed to render " + name, Cause: err}
	}
	return buf.String(), nil
}
