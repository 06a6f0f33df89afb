package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/notebot/internal/apperror"
	"github.com/sakif/notebot/internal/service"
	"github.com/sakif/notebot/internal/session"
)

// homeData feeds home.html, which doubles as the login and sign-up page.
type homeData struct {
	SignUp             bool // render the sign-up variant of the form
	InvalidCredentials bool // show the "invalid credentials" banner
}

// AuthHandler serves the sign-up, login, and logout routes.
//
// AUTH FAILURE MODEL:
// Bad credentials and duplicate names are never HTTP errors — the page is
// re-rendered with a flag. Only unexpected failures (storage down) produce
// a 500.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	renderer *Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected; the
// handler has no knowledge of how they're constructed.
func NewAuthHandler(
	auth *service.AuthService,
	sessions *session.Manager,
	renderer *Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleIndex redirects the bare domain to the login page.
//
// HTTP: GET /
func (h *AuthHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusFound)
}

// HandleSignUpPage renders the sign-up form — unless the visitor already
// has a session, in which case they go straight to their notes.
//
// HTTP: GET /sign_up
func (h *AuthHandler) HandleSignUpPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.NameFromContext(r.Context()); ok {
		http.Redirect(w, r, "/notes", http.StatusFound)
		return
	}
	h.renderer.Render(w, "home.html", homeData{SignUp: true})
}

// HandleSignUp processes the sign-up form.
//
// HTTP: POST /sign_up
// FORM: name, password
//
// A taken name re-renders the form with the invalid-credentials flag and
// leaves the store untouched. A fresh name creates the user, starts the
// session, and redirects to the notes list.
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	password := r.FormValue("password")

	user, err := h.auth.SignUp(r.Context(), name, password)
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			h.renderer.Render(w, "home.html", homeData{
				SignUp:             true,
				InvalidCredentials: true,
			})
			return
		}
		h.logger.Error("sign-up failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.SetCookie(w, user.Name); err != nil {
		h.logger.Error("sign-up: setting session cookie", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

// HandleLoginPage renders the login form, mirroring sign-up's
// redirect-if-authenticated behaviour.
//
// HTTP: GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.NameFromContext(r.Context()); ok {
		http.Redirect(w, r, "/notes", http.StatusFound)
		return
	}
	h.renderer.Render(w, "home.html", homeData{})
}

// HandleLogin processes the login form.
//
// HTTP: POST /login
// FORM: name, password
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	password := r.FormValue("password")

	user, ok, err := h.auth.Login(r.Context(), name, password)
	if err != nil {
		h.logger.Error("login failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.renderer.Render(w, "home.html", homeData{InvalidCredentials: true})
		return
	}

	if err := h.sessions.SetCookie(w, user.Name); err != nil {
		h.logger.Error("login: setting session cookie", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

// HandleLogout clears the session cookie and redirects to login.
// A no-op when there is no session — logging out twice is fine.
//
// HTTP: GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
