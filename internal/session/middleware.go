package session

import (
	"context"
	"net/http"
)

// contextKey is an unexported type for context keys in this package.
// A package-private key type means no other package can read or shadow the
// username we store in the request context.
type contextKey string

const nameKey contextKey = "name"

// Middleware extracts the session from the cookie, if present, and stores
// the username in the request context.
//
// It never blocks the request: this app answers an unauthenticated visit to
// a protected page with the "please log in" rendering of that page, not
// with a 401. Handlers decide what to do via NameFromContext.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err == nil && cookie.Value != "" {
			if name, err := m.Validate(cookie.Value); err == nil {
				ctx := context.WithValue(r.Context(), nameKey, name)
				r = r.WithContext(ctx)
			}
			// An invalid or expired cookie is treated the same as no
			// cookie at all: the request continues anonymously.
		}
		next.ServeHTTP(w, r)
	})
}

// NameFromContext returns the logged-in user's name from the request
// context.
//
// Returns ("", false) when the request is anonymous. This is the app's one
// and only authentication check:
//
//	name, ok := session.NameFromContext(r.Context())
//	if !ok {
//	    // render the "please log in" variant
//	}
func NameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(nameKey).(string)
	return name, ok && name != ""
}
