// Package session keeps the admin login flag and flash messages in a sealed cookie.
package session

import (
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/dogao/cardapio/internal/config"
	"github.com/gorilla/sessions"
)

const (
	cookieName       = "cardapio_session"
	authenticatedKey = "authenticated"
)

// Flash categories, used as CSS classes by the templates
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Manager reads and writes the session cookie
type Manager struct {
	store *sessions.CookieStore
}

// NewManager creates a cookie store signed and encrypted with keys derived from the secret
func NewManager(cfg config.SessionConfig) *Manager {
	hashKey := sha256.Sum256([]byte("auth:" + cfg.Secret))
	blockKey := sha256.Sum256([]byte("enc:" + cfg.Secret))

	store := sessions.NewCookieStore(hashKey[:], blockKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(cfg.MaxAge)

	return &Manager{store: store}
}

// get never fails: an unreadable cookie yields a fresh anonymous session.
// The session is cached on the request, so every call in one request shares it.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, cookieName)
	return s
}

// IsAuthenticated reports whether the request carries the admin flag
func (m *Manager) IsAuthenticated(r *http.Request) bool {
	ok, _ := m.get(r).Values[authenticatedKey].(bool)
	return ok
}

// Login marks the session as authenticated
func (m *Manager) Login(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	s.Values[authenticatedKey] = true
	return m.save(w, r, s)
}

// Logout clears the admin flag, keeping pending flash messages
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, authenticatedKey)
	return m.save(w, r, s)
}

// AddFlash queues a message for the next page
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	s := m.get(r)
	s.AddFlash(Flash{Category: category, Message: message})
	return m.save(w, r, s)
}

// Flashes pops the queued messages. Call before writing the response body.
// The messages are returned even when the emptied session cannot be saved.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) ([]Flash, error) {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out, m.save(w, r, s)
}

func (m *Manager) save(w http.ResponseWriter, r *http.Request, s *sessions.Session) error {
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
