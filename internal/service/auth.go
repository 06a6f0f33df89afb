// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses forms, renders templates, redirects
//	Service (business layer) → credential rules, the note creation protocol
//	Repository (data layer)  → reads/writes sqlite
//
// Handlers never touch SQL; services never touch HTTP. Each service takes
// repository interfaces, so tests swap in in-memory mocks.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/notebot/internal/apperror"
	"github.com/sakif/notebot/internal/model"
	"github.com/sakif/notebot/internal/repository"
)

// AuthService owns account registration and credential checks.
//
// CREDENTIAL MODEL (intentionally naive):
// Names match case-sensitively and exactly; passwords are compared in
// plaintext. No lockout, no normalization, no hashing — a known weakness
// inherited from the product's original behaviour and out of scope to fix.
// All failures are ordinary outcomes (false / domain errors), never panics.
type AuthService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		logger: logger,
	}
}

// SignUp registers a new account.
//
// The name must be globally unique: if any user already has exactly that
// name, SignUp returns apperror.ErrConflict and the store is left
// untouched. On success the created user (with generated ID) is returned.
func (s *AuthService) SignUp(ctx context.Context, name, password string) (*model.User, error) {
	// Availability check — the sign-up variant of credential verification:
	// valid iff the name is NOT already present.
	_, err := s.users.GetUserByName(ctx, name)
	if err == nil {
		return nil, apperror.Conflict("user", name)
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: checking name %q: %w", name, err)
	}

	user := &model.User{
		Name:     name,
		Password: password,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/auth: creating user %q: %w", name, err)
	}

	s.logger.Info("user signed up",
		slog.String("userID", user.ID),
		slog.String("name", user.Name),
	)

	return user, nil
}

// Login reports whether (name, password) exactly matches a stored user.
//
// Returns (user, true) on a match. Any mismatch — unknown name or wrong
// password, down to a single character — returns (nil, false). The two
// cases are indistinguishable to the caller on purpose.
func (s *AuthService) Login(ctx context.Context, name, password string) (*model.User, bool, error) {
	user, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("service/auth: looking up user %q: %w", name, err)
	}

	// Plaintext comparison, inherited as-is. See the package comment on
	// model.User.
	if user.Password != password {
		return nil, false, nil
	}

	s.logger.Info("user logged in", slog.String("name", name))
	return user, true, nil
}

// GetUser returns the user with exactly that name.
// Returns apperror.ErrNotFound when absent.
func (s *AuthService) GetUser(ctx context.Context, name string) (*model.User, error) {
	user, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return user, nil
}
