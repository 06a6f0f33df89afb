package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/notebot/internal/apperror"
	"github.com/sakif/notebot/internal/model"
	"github.com/sakif/notebot/internal/repository"
)

var _ repository.NoteRepository = (*DB)(nil)

// CreateNote inserts a new note. Every write here autocommits — there is no
// batching and no transaction spanning multiple notes, matching the app's
// one-mutation-one-commit model.
func (db *DB) CreateNote(ctx context.Context, note *model.Note) error {
	note.ID = xid.New().String()
	note.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO notes (id, name, author_id, notes, assistant_bot_notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.Name,
		note.AuthorID,
		note.Body,
		note.AssistantNotes,
		note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating note: %w", err)
	}

	return nil
}

// GetNoteByID retrieves a single note by its ID.
func (db *DB) GetNoteByID(ctx context.Context, id string) (*model.Note, error) {
	var n model.Note

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, author_id, notes, assistant_bot_notes, created_at
		 FROM notes
		 WHERE id = ?`,
		id,
	).Scan(
		&n.ID,
		&n.Name,
		&n.AuthorID,
		&n.Body,
		&n.AssistantNotes,
		&n.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("note", id)
		}
		return nil, fmt.Errorf("sqlite: getting note %s: %w", id, err)
	}

	return &n, nil
}

// ListNotesByAuthor returns the author's notes in natural insertion order.
//
// ORDER BY rowid ASC is SQLite's insertion order — there is deliberately no
// timestamp sort key here. The display layer wants newest-first and gets it
// by reversing this slice, which mirrors how the product has always defined
// "newest first" (reverse of insertion order, not a timestamp sort).
func (db *DB) ListNotesByAuthor(ctx context.Context, authorID string) ([]model.Note, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, author_id, notes, assistant_bot_notes, created_at
		 FROM notes
		 WHERE author_id = ?
		 ORDER BY rowid ASC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notes for author %s: %w", authorID, err)
	}
	// sql.Rows holds a pool connection — always close it.
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(
			&n.ID, &n.Name, &n.AuthorID, &n.Body,
			&n.AssistantNotes, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning note row: %w", err)
		}
		notes = append(notes, n)
	}

	// rows.Err() catches failures that happened during iteration.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating notes: %w", err)
	}

	return notes, nil
}

// UpdateNoteName changes only the note's title. The body and the assistant
// commentary are immutable after creation, so they are not in the SET list
// at all — there is no code path that could clobber them.
func (db *DB) UpdateNoteName(ctx context.Context, id, name string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE notes SET name = ? WHERE id = ?`,
		name,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: renaming note %s: %w", id, err)
	}

	// Zero rows affected means the WHERE clause matched nothing.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("note", id)
	}

	return nil
}

// DeleteNote removes a note by its ID.
func (db *DB) DeleteNote(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting note %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("note", id)
	}

	return nil
}

// CountNotes returns the total number of notes across all users.
func (db *DB) CountNotes(ctx context.Context) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting notes: %w", err)
	}
	return n, nil
}
