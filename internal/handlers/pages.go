package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dogao/cardapio/internal/session"
	"github.com/dogao/cardapio/internal/web"
)

// Pages renders HTML pages with the per-request session state
type Pages struct {
	renderer      *web.Renderer
	sessions      *session.Manager
	contactNumber string
	logger        *slog.Logger
}

// NewPages creates the shared page renderer for HTML handlers
func NewPages(renderer *web.Renderer, sessions *session.Manager, contactNumber string, logger *slog.Logger) *Pages {
	return &Pages{
		renderer:      renderer,
		sessions:      sessions,
		contactNumber: contactNumber,
		logger:        logger,
	}
}

// Render pops pending flashes and writes the page. extra flashes are shown after the stored ones.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any, extra ...session.Flash) {
	flashes, err := p.sessions.Flashes(w, r)
	if err != nil {
		p.logger.Error("failed to clear flash messages", "error", err)
	}
	page := web.Page{
		Title:         title,
		Flashes:       append(flashes, extra...),
		Authenticated: p.sessions.IsAuthenticated(r),
		ContactNumber: p.contactNumber,
		Data:          data,
	}
	if err := p.renderer.Render(w, status, name, page); err != nil {
		p.logger.Error("failed to render page", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFound renders the 404 page
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.Render(w, r, http.StatusNotFound, "not_found.html", "Não encontrado", nil)
}

// ServerError logs err and renders the 500 page
func (p *Pages) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	p.Render(w, r, http.StatusInternalServerError, "error.html", "Erro", nil)
}

// RedirectWithFlash queues a flash message and redirects with 303
func (p *Pages) RedirectWithFlash(w http.ResponseWriter, r *http.Request, path, category, message string) {
	if err := p.sessions.AddFlash(w, r, category, message); err != nil {
		p.logger.Error("failed to store flash", "error", err)
	}
	redirect(w, r, path)
}
