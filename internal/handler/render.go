// Package handler contains the HTTP request handlers for the application.
//
// HANDLER RESPONSIBILITIES:
//  1. Parse the incoming request (form values, URL params, session context)
//  2. Call the service layer
//  3. Render a template or redirect
//
// Handlers contain no business logic and no SQL — they are the glue between
// HTTP and the services.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/yuin/goldmark"
)

// Renderer holds the parsed page templates.
//
// TEMPLATE COMPOSITION:
// base.html defines the page shell with a {{template "content" .}} slot;
// each page file fills it with {{define "content"}}...{{end}}. Because every
// page defines the same "content" block, each page gets its own template set
// (base + page) parsed once at startup — parsing is expensive, executing is
// cheap.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// pageFiles lists every page template that composes with base.html.
var pageFiles = []string{"home.html", "notes.html", "form.html"}

// NewRenderer parses all page templates from dir.
func NewRenderer(dir string, logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))

	for _, page := range pageFiles {
		tmpl, err := template.ParseFiles(
			filepath.Join(dir, "base.html"),
			filepath.Join(dir, page),
		)
		if err != nil {
			return nil, fmt.Errorf("handler: parsing template %s: %w", page, err)
		}
		pages[page] = tmpl
	}

	return &Renderer{
		pages:  pages,
		logger: logger,
	}, nil
}

// Render executes the named page template with data.
//
// Headers must be set before the body is written; if execution fails
// mid-write the 500 is best-effort, which is the accepted tradeoff of
// streaming template output.
func (rd *Renderer) Render(w http.ResponseWriter, page string, data any) {
	tmpl, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// markdownToHTML converts the assistant commentary from markdown to HTML
// for display.
//
// template.HTML marks the result as pre-escaped so html/template inserts it
// verbatim. That is safe only because the input is the assistant's output,
// which goldmark escapes while converting — never pass raw user input
// through here.
func markdownToHTML(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		// Conversion failure falls back to the raw text, escaped.
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
