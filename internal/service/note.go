package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/notebot/internal/assistant"
	"github.com/sakif/notebot/internal/model"
	"github.com/sakif/notebot/internal/repository"
)

// commentaryDateFormat is a Go reference-time layout producing DD/MM/YYYY.
const commentaryDateFormat = "02/01/2006"

// NoteService owns the note lifecycle, including the creation protocol that
// calls the assistant.
type NoteService struct {
	notes     repository.NoteRepository
	assistant assistant.Client
	logger    *slog.Logger
}

// NewNoteService creates a NoteService.
//
// The assistant client is injected like any other dependency — tests pass a
// stub, production passes the OpenAI client constructed in main.
func NewNoteService(notes repository.NoteRepository, client assistant.Client, logger *slog.Logger) *NoteService {
	return &NoteService{
		notes:     notes,
		assistant: client,
		logger:    logger,
	}
}

// Create runs the note creation protocol:
//
//  1. Send the raw note body to the assistant as the prompt.
//  2. Prefix the generated commentary with today's date, "DD/MM/YYYY: ".
//  3. Persist the note with the combined string as its commentary.
//
// The assistant call is synchronous and blocks the request until the
// external service responds. If generation fails, the error propagates and
// nothing is persisted — the commentary is set exactly once, at creation,
// and never regenerated. The body is sent as-is: no emptiness check before
// the external call, matching the product's behaviour.
func (s *NoteService) Create(ctx context.Context, title, authorID, body string) (*model.Note, error) {
	commentary, err := s.assistant.Generate(ctx, body)
	if err != nil {
		s.logger.Error("assistant generation failed",
			slog.String("authorID", authorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/note: generating commentary: %w", err)
	}

	today := time.Now().Format(commentaryDateFormat)

	note := &model.Note{
		Name:           title,
		AuthorID:       authorID,
		Body:           body,
		AssistantNotes: today + ": " + commentary,
	}

	if err := s.notes.CreateNote(ctx, note); err != nil {
		s.logger.Error("failed to create note",
			slog.String("authorID", authorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/note: creating note: %w", err)
	}

	s.logger.Info("note created",
		slog.String("id", note.ID),
		slog.String("authorID", authorID),
	)

	return note, nil
}

// ListByAuthor returns the author's notes, most recently created first.
//
// The repository hands back natural insertion order and we reverse it here.
// That — not a timestamp sort — is how the product defines "newest first".
func (s *NoteService) ListByAuthor(ctx context.Context, authorID string) ([]model.Note, error) {
	notes, err := s.notes.ListNotesByAuthor(ctx, authorID)
	if err != nil {
		s.logger.Error("failed to list notes",
			slog.String("authorID", authorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/note: listing notes: %w", err)
	}

	for i, j := 0, len(notes)-1; i < j; i, j = i+1, j-1 {
		notes[i], notes[j] = notes[j], notes[i]
	}

	return notes, nil
}

// GetByID returns a single note, for pre-filling the edit form.
func (s *NoteService) GetByID(ctx context.Context, id string) (*model.Note, error) {
	return s.notes.GetNoteByID(ctx, id)
}

// Rename updates only the note's title. The body and the assistant
// commentary are untouched — byte-identical before and after.
//
// There is no ownership check: any authenticated user may rename any note
// id. Inherited from the product and deliberately not "fixed" here; see
// DESIGN.md.
func (s *NoteService) Rename(ctx context.Context, id, title string) error {
	if err := s.notes.UpdateNoteName(ctx, id, title); err != nil {
		return err
	}

	s.logger.Info("note renamed", slog.String("id", id))
	return nil
}

// Delete removes the note. Same ownership caveat as Rename.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	if err := s.notes.DeleteNote(ctx, id); err != nil {
		return err
	}

	s.logger.Info("note deleted", slog.String("id", id))
	return nil
}
