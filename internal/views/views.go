// Package views renders the HTML pages served to browser clients.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Engine implements fiber.Views over the embedded templates. Page names are
// the names given in their define blocks, e.g. "brands/index".
type Engine struct {
	mu        sync.RWMutex
	templates *template.Template
}

// New returns an Engine; templates are parsed by Load.
func New() *Engine {
	return &Engine{}
}

// Load parses every embedded template.
func (e *Engine) Load() error {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"date": func(t time.Time) string { return t.Format("2006-01-02") },
	}).ParseFS(files, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	e.mu.Lock()
	e.templates = tmpl
	e.mu.Unlock()
	return nil
}

// Render executes the page called name with binding. Layouts are not used;
// every page includes the shared header and footer itself.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	e.mu.RLock()
	tmpl := e.templates
	e.mu.RUnlock()
	if tmpl == nil {
		if err := e.Load(); err != nil {
			return err
		}
		e.mu.RLock()
		tmpl = e.templates
		e.mu.RUnlock()
	}
	if tmpl.Lookup(name) == nil {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, name, binding)
}
