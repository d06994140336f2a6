// Package render wires html/template into Echo's Renderer interface for the
// server-side catalog pages.
package render

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Renderer renders named templates parsed from a glob at startup.
type Renderer struct {
	templates *template.Template
}

// New parses every template matching glob (e.g. "web/templates/*.html").
func New(glob string) (*Renderer, error) {
	t, err := template.ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
