package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type ctxKey int

const ctxKeySession ctxKey = iota

type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Manager attaches a Session to every request, issuing a cookie on first visit.
type Manager struct {
	backend Backend
	cookie  CookieConfig
}

func NewManager(backend Backend, cookie CookieConfig) *Manager {
	if cookie.Name == "" {
		cookie.Name = "randevubot_session"
	}
	return &Manager{backend: backend, cookie: cookie}
}

func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(m.cookie.Name); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		// Refresh on every request so the cookie outlives active sessions.
		http.SetCookie(w, &http.Cookie{
			Name:     m.cookie.Name,
			Value:    id,
			Path:     "/",
			MaxAge:   int(m.cookie.TTL.Seconds()),
			HttpOnly: true,
			Secure:   m.cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		ctx := NewContext(r.Context(), New(id, m.backend))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKeySession).(*Session)
	return s
}
