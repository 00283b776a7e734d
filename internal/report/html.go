// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"html/template"
	"io"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"authors": joinAuthors,
	"inc":     func(i int) int { return i + 1 },
	"date":    func(it types.Item) string { return it.PublishedDate() },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 880px; margin: 2rem auto; padding: 0 1rem; color: #222; background: #fafafa; }
  h1 { text-align: center; margin-bottom: .25rem; }
  .meta { text-align: center; color: #666; margin-bottom: 2rem; }
  .paper { background: #fff; border: 1px solid #e3e3e3; border-radius: 8px; padding: 1rem 1.25rem; margin-bottom: 1.25rem; }
  .paper h3 { margin: 0 0 .5rem 0; }
  .field { margin: .25rem 0; }
  .label { font-weight: 600; }
  .abstract { margin-top: .5rem; line-height: 1.5; }
  .empty { text-align: center; color: #888; }
</style>
</head>
<body>
<h1>📚 {{.Title}}</h1>
<p class="meta">Keyword: {{.Keyword}} · Generated {{.Generated}} · {{len .Items}} paper(s)</p>
{{- range $i, $it := .Items}}
<div class="paper">
  <h3>{{inc $i}}. {{$it.Title}}</h3>
  <p class="field"><span class="label">🧑 Authors:</span> {{authors $it.Authors}}</p>
  <p class="field"><span class="label">📅 Published:</span> {{date $it}}</p>
  <p class="field"><span class="label">🔗 Link:</span> <a href="{{$it.URL}}">{{$it.URL}}</a></p>
  <p class="abstract"><span class="label">📄 Abstract:</span> {{$it.Summary}}</p>
</div>
{{- else}}
<p class="empty">No new papers.</p>
{{- end}}
</body>
</html>
`))

type htmlRenderer struct{}

func (htmlRenderer) Extension() string { return "html" }

func (htmlRenderer) Render(w io.Writer, rep Report) error {
	return htmlTemplate.Execute(w, struct {
		Title     string
		Keyword   string
		Generated string
		Items     []types.Item
	}{
		Title:     rep.heading(),
		Keyword:   rep.Keyword,
		Generated: rep.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"),
		Items:     rep.Items,
	})
}
