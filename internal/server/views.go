package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFiles embed.FS

// pageNames lists every renderable view; each one is parsed together with the
// shared base layout.
var pageNames = []string{"index", "edit", "add", "select", "error"}

// Views holds the parsed HTML templates for the web app.
type Views struct {
	pages map[string]*template.Template
}

// NewViews parses the embedded templates, combining each page with the base layout.
func NewViews() (*Views, error) {
	pages := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFiles, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Views{pages: pages}, nil
}

// Render executes the named page template and writes it with the given status.
//
// The template is executed into a buffer first so an execution error never
// leaves a half-written page on the wire.
func (v *Views) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown template: %s", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}
