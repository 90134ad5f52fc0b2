package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dogao/cardapio/internal/auth"
	"github.com/dogao/cardapio/internal/middleware"
	"github.com/dogao/cardapio/internal/session"
)

// DashboardPath is where a successful login lands
const DashboardPath = "/dashboard"

// AuthHandler handles admin login and logout
type AuthHandler struct {
	authenticator *auth.Authenticator
	sessions      *session.Manager
	pages         *Pages
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authenticator *auth.Authenticator, sessions *session.Manager, pages *Pages, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		sessions:      sessions,
		pages:         pages,
		logger:        logger,
	}
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.IsAuthenticated(r) {
		redirect(w, r, DashboardPath)
		return
	}
	h.pages.Render(w, r, http.StatusOK, "login.html", "Login", "")
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.Render(w, r, http.StatusBadRequest, "login.html", "Login", "",
			session.Flash{Category: session.FlashDanger, Message: "Formulário inválido."})
		return
	}

	username := r.PostForm.Get("username")
	if !h.authenticator.Verify(username, r.PostForm.Get("password")) {
		h.logger.Warn("failed admin login", "username", username, "remote_addr", r.RemoteAddr)
		h.pages.Render(w, r, http.StatusUnauthorized, "login.html", "Login", username,
			session.Flash{Category: session.FlashDanger, Message: "Usuário ou senha inválidos."})
		return
	}

	if err := h.sessions.Login(w, r); err != nil {
		h.pages.ServerError(w, r, err)
		return
	}
	h.logger.Info("admin logged in", "remote_addr", r.RemoteAddr)
	h.pages.RedirectWithFlash(w, r, DashboardPath, session.FlashSuccess, "Login realizado com sucesso!")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		h.pages.ServerError(w, r, err)
		return
	}
	h.pages.RedirectWithFlash(w, r, middleware.LoginPath, session.FlashInfo, "Você saiu do painel.")
}
