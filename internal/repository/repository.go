// Package repository declares the storage interfaces the service layer
// depends on.
//
// PROGRAMMING TO AN INTERFACE:
// Services receive these interfaces, never the concrete sqlite types.
// Tests swap in hand-written in-memory mocks; production wires the sqlite
// implementation. Neither side knows about the other.
//
// NAMING:
// Both interfaces are implemented by the same *sqlite.DB, so the method
// names carry the entity (CreateUser, CreateNote) — Go has no overloading,
// and one storage gateway per process is the point, not a limitation.
package repository

import (
	"context"

	"github.com/sakif/notebot/internal/model"
)

// UserRepository persists registered accounts.
//
// There is deliberately no update or delete — users are created at sign-up
// and never mutated or removed (no route exists for either).
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByName returns the user with exactly that name
	// (case-sensitive). Returns apperror.ErrNotFound when no such user
	// exists — absence is a normal outcome here, not a failure.
	GetUserByName(ctx context.Context, name string) (*model.User, error)

	// CountUsers reports the total number of users. Used by tests to assert
	// that failed sign-ups leave the store untouched.
	CountUsers(ctx context.Context) (int, error)
}

// NoteRepository persists notes.
type NoteRepository interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetNoteByID(ctx context.Context, id string) (*model.Note, error)

	// ListNotesByAuthor returns the author's notes in natural insertion
	// order (oldest first). The service reverses for display.
	ListNotesByAuthor(ctx context.Context, authorID string) ([]model.Note, error)

	// UpdateNoteName changes only the note's title. Body and assistant
	// commentary are immutable after creation.
	UpdateNoteName(ctx context.Context, id, name string) error

	DeleteNote(ctx context.Context, id string) error
	CountNotes(ctx context.Context) (int, error)
}
