// Package web holds the embedded page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"trendcloud/internal/config"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// PageData feeds the cloud page template. SVG is pre-rendered and escaped by
// the renderer; everything else goes through the template's auto-escaping.
type PageData struct {
	DisplayName  string
	CloudID      string
	SVG          template.HTML
	CanvasWidth  int
	CanvasHeight int
	Languages    []config.Language
	SelectedLang string
	Error        string
	CSRFField    template.HTML
	CSRFToken    string
}

// RenderPage writes the cloud page.
func RenderPage(w io.Writer, data PageData) error {
	return pageTmpl.ExecuteTemplate(w, "cloud.html.tmpl", data)
}

// Static returns the static asset filesystem rooted at its contents.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
