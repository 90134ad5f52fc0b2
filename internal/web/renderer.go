// Package web renders the server-side HTML pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dogao/cardapio/internal/session"
	"github.com/dogao/cardapio/internal/storage"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "layout.html"

// standalone pages are rendered without the site layout
var standalone = map[string]bool{
	"order_print.html": true,
}

// Page is the data passed to every template
type Page struct {
	Title         string
	Flashes       []session.Flash
	Authenticated bool
	ContactNumber string
	Data          any
}

// Renderer executes the embedded page templates
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template. Image references are resolved against store.
func NewRenderer(store storage.Store) (*Renderer, error) {
	funcs := template.FuncMap{
		"imageURL": func(ref string) string { return storage.PublicURL(store, ref) },
		"money":    Money,
		"datetime": func(t time.Time) string { return t.Local().Format("02/01/2006 15:04") },
		"plural": func(n int64, one, many string) string {
			if n == 1 {
				return one
			}
			return many
		},
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := path.Base(file)
		if name == layoutFile {
			continue
		}
		patterns := []string{file}
		if !standalone[name] {
			patterns = []string{"templates/" + layoutFile, file}
		}
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the named page with the given status.
// The page is executed into a buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	entry := "layout"
	if standalone[name] {
		entry = name
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, entry, page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Money formats an amount the Brazilian way, e.g. R$ 1.234,50
func Money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return "R$ " + sign + b.String() + "," + cents
}
