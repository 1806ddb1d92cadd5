package scorecard

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/vpsports/scorekeeper/internal/cricket"
)

// Renderer turns a compiled scorecard into a document.
type Renderer interface {
	ContentType() string
	Render(w io.Writer, sc Scorecard) error
}

//go:embed templates/*.html
var templateFS embed.FS

// HTMLRenderer produces a self-contained, print-friendly HTML page.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded scorecard template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("scorecard.html").Funcs(template.FuncMap{
		"overs": cricket.Overs,
	}).ParseFS(templateFS, "templates/scorecard.html")
	if err != nil {
		return nil, fmt.Errorf("parse scorecard template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

// Render writes the scorecard page to w.
func (r *HTMLRenderer) Render(w io.Writer, sc Scorecard) error {
	return r.tmpl.Execute(w, sc)
}
