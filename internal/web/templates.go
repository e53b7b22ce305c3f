// Package web holds the server-rendered HTML pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page names known to the Renderer.
const (
	PageHome        = "home"
	PageAbout       = "about"
	PageListings    = "listings"
	PageProperty    = "property"
	PageDashboard   = "dashboard"
	PageData        = "data"
	PagePredictions = "predictions"
	PageNotFound    = "notfound"
)

var pages = []string{
	PageHome, PageAbout, PageListings, PageProperty,
	PageDashboard, PageData, PagePredictions, PageNotFound,
}

// View is what every page template receives. Nav selects the highlighted
// navigation entry; Body is the page-specific view model.
type View struct {
	Title string
	Nav   string
	Body  any
}

// Renderer executes pre-parsed page templates inside the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	base, err := template.New(path.Base(layoutFile)).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render writes the named page. Output is buffered so a template error never
// leaves a half-written page.
func (r *Renderer) Render(w io.Writer, name string, view View) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", view); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
