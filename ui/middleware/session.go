package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"pbihub/domain/session"
	"pbihub/ports"

	"github.com/google/uuid"
)

// CookieName carries the learner's session id.
const CookieName = "pbihub_session"

type contextKey struct{}

// Defaults seed a session for a first-time visitor.
type Defaults struct {
	Username string
	Accent   session.Accent
}

// EnsureSession loads the session named by the cookie, or starts and stores a
// new one. A store failure is logged and the request continues with a fresh
// unsaved session rather than failing the page.
func EnsureSession(store ports.SessionStore, defaults Defaults) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if cookie, err := r.Cookie(CookieName); err == nil {
				if id, err := uuid.Parse(cookie.Value); err == nil {
					if s, err := store.Get(ctx, id); err == nil {
						next.ServeHTTP(w, r.WithContext(WithSession(ctx, s)))
						return
					}
				}
			}

			s := session.New(defaults.Username, defaults.Accent)
			if err := store.Save(ctx, s); err != nil {
				log.Printf("[EnsureSession] failed to store new session %s: %v", s.ID, err)
			} else {
				log.Printf("[EnsureSession] started session %s for %s", s.ID, s.Username)
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    s.ID.String(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().AddDate(1, 0, 0),
			})
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, s)))
		})
	}
}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// SessionFrom returns the request's session. ok is false outside EnsureSession.
func SessionFrom(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(contextKey{}).(session.Session)
	return s, ok
}
