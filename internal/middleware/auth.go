package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dogao/cardapio/internal/session"
)

// LoginPath is where anonymous visitors of admin pages are sent
const LoginPath = "/login"

// RequireAdmin lets the request through only when the session carries the admin flag.
// Anonymous requests are redirected to the login page with a warning flash.
func RequireAdmin(sessions *session.Manager, log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions.IsAuthenticated(r) {
				next.ServeHTTP(w, r)
				return
			}

			log.Info("admin route requires login", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
			if err := sessions.AddFlash(w, r, session.FlashWarning, "Por favor, faça login para acessar esta página."); err != nil {
				log.Error("failed to store flash", "error", err)
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		})
	}
}
