// ABOUTME: Exports an entity's resolved timeline as a standalone HTML digest page.
// ABOUTME: Embeds the SVG rendering and a per-appointment listing with Markdown notes via goldmark.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"

	"github.com/redpolitica/trayectoria/layout"
)

// digestTemplate is the single-page digest layout. The SVG is embedded
// inline inside a horizontally scrollable container.
var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"markdown": markdownToHTML,
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}} — trayectoria</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
.timeline { overflow-x: auto; border: 1px solid #ddd; padding: 0.5rem; }
.appointment { border-left: 3px solid #999; padding-left: 0.8rem; margin: 1rem 0; }
.appointment .dates { color: #666; font-size: 0.9rem; }
.appointment .notes { margin-top: 0.3rem; }
.tags { color: #1e5a7b; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Span}}</p>
<div class="timeline">{{safeHTML .SVG}}</div>
{{range .Appointments}}
<div class="appointment">
<strong>{{.Primary}}</strong>{{if .Secondary}} — {{.Secondary}}{{end}}
<div class="dates">{{.Dates}} · {{.Category}}</div>
{{if .Tags}}<div class="tags">{{range .Tags}}#{{.}} {{end}}</div>{{end}}
{{if .Notes}}<div class="notes">{{markdown .Notes}}</div>{{end}}
</div>
{{end}}
</body>
</html>
`))

// digestData is the view-model for the digest template.
type digestData struct {
	Title        string
	Span         string
	SVG          string
	Appointments []digestAppointment
}

type digestAppointment struct {
	Primary   string
	Secondary string
	Dates     string
	Category  string
	Tags      []string
	Notes     string
}

// WriteDigest renders the HTML digest for one entity's layout to w.
func WriteDigest(w io.Writer, title string, lay layout.Layout, cfg layout.Config) error {
	data := digestData{
		Title: title,
		Span: fmt.Sprintf("%d appointments across %d–%d",
			len(lay.Bars), lay.Bounds.StartYear, lay.Bounds.EndYear),
		SVG: SVG(lay, cfg),
	}
	for _, bar := range lay.Bars {
		data.Appointments = append(data.Appointments, digestAppointment{
			Primary:   bar.PrimaryLabel,
			Secondary: bar.SecondaryLabel,
			Dates:     fmt.Sprintf("%s – %s", bar.Start.Format("2006-01"), bar.End.Format("2006-01")),
			Category:  bar.Category.String(),
			Tags:      bar.Tags,
			Notes:     bar.Notes,
		})
	}
	return digestTemplate.Execute(w, data)
}

// markdownToHTML converts appointment notes from Markdown. Conversion
// failures fall back to escaped plain text.
func markdownToHTML(input string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(buf.String())
}
