// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the "composition root": the one place where the database, the
// assistant client, the services, and the handlers are wired together. The
// former process-wide singletons (storage gateway, assistant client) live
// here as ordinary injected dependencies — constructed once, held for the
// process lifetime, passed down explicitly.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/notebot/internal/assistant"
	"github.com/sakif/notebot/internal/handler"
	"github.com/sakif/notebot/internal/middleware"
	sqliteRepo "github.com/sakif/notebot/internal/repository/sqlite"
	"github.com/sakif/notebot/internal/service"
	"github.com/sakif/notebot/internal/session"
)

// Config holds server configuration.
type Config struct {
	Port        int
	TemplateDir string
	DBPath      string
	SecretKey   string // session signing secret (APP_SECRET_KEY)
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB // closed during graceful shutdown
}

// New creates a Server and wires the whole dependency chain:
//
//	sqlite.DB → AuthService / NoteService → handlers → routes
//
// The assistant client is passed in (not built here) so tests and main can
// choose the implementation — main wires the OpenAI client, tests a stub.
func New(cfg Config, logger *slog.Logger, client assistant.Client) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(client); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router. Tests mount it on httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources without going through Start's
// signal handling. Intended for tests.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware and the route table.
//
// ROUTE TABLE:
//
//	GET       /            → redirect to /login
//	GET|POST  /sign_up     → sign-up form / registration
//	GET|POST  /login       → login form / credential check
//	GET       /logout      → clear session, redirect to /login
//	GET|POST  /notes       → notes listing (newest first)
//	GET|POST  /new         → creation form / note creation protocol
//	GET|POST  /edit/{id}   → edit form / rename
//	GET       /delete/{id} → delete, redirect to /notes
func (s *Server) setupRoutes(client assistant.Client) error {
	// Global middleware, in order.
	s.router.Use(chimiddleware.RequestID) // X-Request-ID for tracing
	s.router.Use(chimiddleware.RealIP)    // real client IP behind proxies
	s.router.Use(chimiddleware.Recoverer) // panics become 500s, not crashes
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.ServerHeader) // X-Server-Software on every response

	sessions, err := session.NewManager(s.config.SecretKey)
	if err != nil {
		return fmt.Errorf("creating session manager: %w", err)
	}
	// Attaches the logged-in name to the context when the cookie is valid.
	// Never blocks — unauthenticated requests reach the handlers, which
	// render the "please log in" variants themselves.
	s.router.Use(sessions.Middleware)

	renderer, err := handler.NewRenderer(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	authService := service.NewAuthService(s.db, s.logger)
	noteService := service.NewNoteService(s.db, client, s.logger)

	authHandler := handler.NewAuthHandler(authService, sessions, renderer, s.logger)
	noteHandler := handler.NewNoteHandler(noteService, authService, renderer, s.logger)

	s.router.Get("/", authHandler.HandleIndex)

	s.router.Get("/sign_up", authHandler.HandleSignUpPage)
	s.router.Post("/sign_up", authHandler.HandleSignUp)
	s.router.Get("/login", authHandler.HandleLoginPage)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Get("/logout", authHandler.HandleLogout)

	s.router.Get("/notes", noteHandler.HandleList)
	s.router.Post("/notes", noteHandler.HandleList) // POST accepted, same behaviour
	s.router.Get("/new", noteHandler.HandleNewPage)
	s.router.Post("/new", noteHandler.HandleCreate)
	s.router.Get("/edit/{id}", noteHandler.HandleEditPage)
	s.router.Post("/edit/{id}", noteHandler.HandleEdit)
	s.router.Get("/delete/{id}", noteHandler.HandleDelete)

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database (flushes the WAL, releases the file lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.config.Port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// The note creation request waits synchronously on the external
		// generation call, so the write timeout has to outlive the
		// assistant client's 120s request timeout.
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
