package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/notebot/internal/apperror"
	"github.com/sakif/notebot/internal/model"
)

func createTestNote(t *testing.T, db *DB, authorID, name, body, commentary string) *model.Note {
	t.Helper()
	note := &model.Note{
		Name:           name,
		AuthorID:       authorID,
		Body:           body,
		AssistantNotes: commentary,
	}
	if err := db.CreateNote(context.Background(), note); err != nil {
		t.Fatalf("failed to create test note: %v", err)
	}
	return note
}

func TestCreateNote(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "alice", "pw1")

	note := &model.Note{
		Name:           "loops",
		AuthorID:       author.ID,
		Body:           "what is a for loop",
		AssistantNotes: "01/01/2026: a for loop repeats",
	}
	if err := db.CreateNote(context.Background(), note); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}

	if note.ID == "" {
		t.Error("CreateNote() did not set note.ID")
	}

	found, err := db.GetNoteByID(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("GetNoteByID() error = %v", err)
	}
	if found.Body != "what is a for loop" {
		t.Errorf("Body = %q, want %q", found.Body, "what is a for loop")
	}
	if found.AssistantNotes != "01/01/2026: a for loop repeats" {
		t.Errorf("AssistantNotes = %q, want %q", found.AssistantNotes, "01/01/2026: a for loop repeats")
	}
}

func TestGetNoteByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetNoteByID(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// ListNotesByAuthor must return natural insertion order (oldest first) —
// the display layer depends on reversing exactly this.
func TestListNotesByAuthor_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "alice", "pw1")

	createTestNote(t, db, author.ID, "A", "body A", "")
	createTestNote(t, db, author.ID, "B", "body B", "")
	createTestNote(t, db, author.ID, "C", "body C", "")

	notes, err := db.ListNotesByAuthor(context.Background(), author.ID)
	if err != nil {
		t.Fatalf("ListNotesByAuthor() error = %v", err)
	}

	if len(notes) != 3 {
		t.Fatalf("got %d notes, want 3", len(notes))
	}
	for i, want := range []string{"A", "B", "C"} {
		if notes[i].Name != want {
			t.Errorf("notes[%d].Name = %q, want %q", i, notes[i].Name, want)
		}
	}
}

// Listing is scoped to the author — other users' notes never leak in.
func TestListNotesByAuthor_ScopedToAuthor(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice", "pw1")
	bob := createTestUser(t, db, "bob", "pw2")

	createTestNote(t, db, alice.ID, "alice note", "", "")
	createTestNote(t, db, bob.ID, "bob note", "", "")

	notes, err := db.ListNotesByAuthor(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListNotesByAuthor() error = %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("got %d notes for alice, want 1", len(notes))
	}
	if notes[0].Name != "alice note" {
		t.Errorf("Name = %q, want %q", notes[0].Name, "alice note")
	}
}

// Renaming must touch only the title: body and assistant commentary are
// byte-identical before and after.
func TestUpdateNoteName_OnlyTitleChanges(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "alice", "pw1")
	note := createTestNote(t, db, author.ID, "old title", "the body", "01/01/2026: commentary")

	if err := db.UpdateNoteName(context.Background(), note.ID, "new title"); err != nil {
		t.Fatalf("UpdateNoteName() error = %v", err)
	}

	found, err := db.GetNoteByID(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("GetNoteByID() error = %v", err)
	}
	if found.Name != "new title" {
		t.Errorf("Name = %q, want %q", found.Name, "new title")
	}
	if found.Body != "the body" {
		t.Errorf("Body changed: %q, want %q", found.Body, "the body")
	}
	if found.AssistantNotes != "01/01/2026: commentary" {
		t.Errorf("AssistantNotes changed: %q, want %q", found.AssistantNotes, "01/01/2026: commentary")
	}
}

func TestUpdateNoteName_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateNoteName(context.Background(), "missing", "title")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteNote(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "alice", "pw1")
	note := createTestNote(t, db, author.ID, "doomed", "", "")
	createTestNote(t, db, author.ID, "survivor", "", "")

	if err := db.DeleteNote(context.Background(), note.ID); err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}

	// The deleted note is gone from the author's listing.
	notes, err := db.ListNotesByAuthor(context.Background(), author.ID)
	if err != nil {
		t.Fatalf("ListNotesByAuthor() error = %v", err)
	}
	for _, n := range notes {
		if n.ID == note.ID {
			t.Error("deleted note still present in listing")
		}
	}

	// And the total count dropped by exactly one.
	n, err := db.CountNotes(context.Background())
	if err != nil {
		t.Fatalf("CountNotes() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountNotes() = %d, want 1", n)
	}
}

func TestDeleteNote_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.DeleteNote(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
