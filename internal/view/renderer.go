package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns view models into markup.
type Renderer interface {
	// RenderPage renders a listing page with a grid of cards.
	RenderPage(w io.Writer, p Page) error

	// RenderDetail renders a page for the first card in p.
	RenderDetail(w io.Writer, p Page) error

	// RenderNotFound renders the not found page.
	RenderNotFound(w io.Writer, p Page) error
}

// htmlRenderer implements Renderer with html/template.
type htmlRenderer struct {
	templates *template.Template
}

// NewHTMLRenderer parses the embedded templates.
func NewHTMLRenderer() (Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &htmlRenderer{templates: tmpl}, nil
}

func (r *htmlRenderer) RenderPage(w io.Writer, p Page) error {
	return r.execute(w, "listing", p)
}

func (r *htmlRenderer) RenderDetail(w io.Writer, p Page) error {
	if len(p.Cards) == 0 {
		return fmt.Errorf("detail page requires a card")
	}
	return r.execute(w, "detail", p)
}

func (r *htmlRenderer) RenderNotFound(w io.Writer, p Page) error {
	return r.execute(w, "notfound", p)
}

func (r *htmlRenderer) execute(w io.Writer, name string, p Page) error {
	if err := r.templates.ExecuteTemplate(w, name, p); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
