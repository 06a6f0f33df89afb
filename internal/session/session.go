// Package session implements the signed session cookie.
//
// SESSION MODEL:
// The only session state this app tracks is the logged-in user's name. We
// keep it client-side in a signed JWT stored in an HttpOnly cookie — the
// server holds no session table. The signature (HMAC-SHA256 with the
// APP_SECRET_KEY secret) ensures nobody can forge a session for another
// name; absence or invalidity of the cookie is the sole "not
// authenticated" signal.
//
// JWT STRUCTURE (three base64-encoded parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: algorithm + token type → {"alg":"HS256","typ":"JWT"}
//	- Payload: claims → {"sub":"alice","exp":1234567890,...}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
//
// The server verifies the signature with nothing but the secret — no DB
// lookup per request.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie the session token travels in.
const CookieName = "session"

const issuer = "notebot"

// lifetime is how long a login lasts before the user must sign in again.
const lifetime = 24 * time.Hour

// Manager signs and verifies session tokens and reads/writes the cookie.
//
// It holds the HMAC secret used for both operations. Constructed once at
// startup from APP_SECRET_KEY and injected into the handlers.
type Manager struct {
	secret []byte
}

// NewManager creates a Manager with the given secret.
// The secret should be at least 32 bytes of random data in production,
// e.g. APP_SECRET_KEY=$(openssl rand -hex 32).
func NewManager(secret string) (*Manager, error) {
	if len(secret) < 16 {
		return nil, errors.New("session: secret must be at least 16 characters")
	}
	return &Manager{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims; the logged-in user's name goes in
// "sub" (Subject), the standard claim for whom the token belongs to.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs a session token for the given username.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, same key signs and
// verifies. Right fit for a single-server app.
func (m *Manager) Issue(name string) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("session: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token, returning the username it
// encodes.
//
// jwt.WithValidMethods pins the algorithm to HS256 — without it an attacker
// could try an algorithm-confusion token ("alg":"none" and friends).
func (m *Manager) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("session: unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("session: token expired")
		}
		return "", fmt.Errorf("session: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("session: invalid token claims")
	}

	name := c.Subject
	if name == "" {
		return "", fmt.Errorf("session: token has no subject")
	}

	return name, nil
}

// SetCookie starts a session for name by issuing a token and writing the
// cookie. Called on successful login and sign-up.
//
// HttpOnly = JavaScript cannot read the cookie (XSS protection).
// SameSite=Lax = sent on top-level navigations but not cross-site POSTs.
// Secure stays off for local dev; enable it behind HTTPS.
func (m *Manager) SetCookie(w http.ResponseWriter, name string) error {
	token, err := m.Issue(name)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie ends the session by deleting the cookie. A no-op for
// browsers that never had one — exactly what logout wants.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
