// Package apperror defines the application's domain error taxonomy.
//
// Services return these instead of HTTP status codes, so the business layer
// stays protocol-agnostic. Handlers translate them at the edge:
//
//	ErrNotFound   → 404 page
//	ErrValidation → re-rendered form
//	ErrConflict   → "invalid credentials" flag (duplicate sign-up name)
//
// errors.Is() works through the chain because AppError implements Unwrap().
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// AppError carries a sentinel (for errors.Is) plus a human-readable message.
type AppError struct {
	Err     error  // sentinel, one of the vars above
	Message string // human-readable description
	Field   string // optional: form field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation, e.g. a sign-up name that is
// already taken.
func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists: %s", resource, key),
	}
}
