package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/sakif/notebot/internal/apperror"
	"github.com/sakif/notebot/internal/model"
)

// mockNoteRepo is a hand-written in-memory repository.NoteRepository that
// preserves insertion order, like the real store's rowid ordering.
type mockNoteRepo struct {
	notes  []model.Note
	nextID int
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{}
}

func (m *mockNoteRepo) CreateNote(_ context.Context, note *model.Note) error {
	m.nextID++
	note.ID = fmt.Sprintf("note-%d", m.nextID)
	m.notes = append(m.notes, *note)
	return nil
}

func (m *mockNoteRepo) GetNoteByID(_ context.Context, id string) (*model.Note, error) {
	for i := range m.notes {
		if m.notes[i].ID == id {
			note := m.notes[i]
			return &note, nil
		}
	}
	return nil, apperror.NotFound("note", id)
}

func (m *mockNoteRepo) ListNotesByAuthor(_ context.Context, authorID string) ([]model.Note, error) {
	var result []model.Note
	for _, note := range m.notes {
		if note.AuthorID == authorID {
			result = append(result, note)
		}
	}
	return result, nil
}

func (m *mockNoteRepo) UpdateNoteName(_ context.Context, id, name string) error {
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes[i].Name = name
			return nil
		}
	}
	return apperror.NotFound("note", id)
}

func (m *mockNoteRepo) DeleteNote(_ context.Context, id string) error {
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("note", id)
}

func (m *mockNoteRepo) CountNotes(_ context.Context) (int, error) {
	return len(m.notes), nil
}

// stubAssistant returns a canned response (or error) and records prompts.
type stubAssistant struct {
	response string
	err      error
	prompts  []string
}

func (s *stubAssistant) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestCreate_CommentaryDatePrefix(t *testing.T) {
	repo := newMockNoteRepo()
	stub := &stubAssistant{response: "elaboration about slices"}
	svc := NewNoteService(repo, stub, testLogger())

	note, err := svc.Create(context.Background(), "slices", "author-1", "go slices grow")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Commentary is today's date as DD/MM/YYYY, a colon-space, then the
	// generated text, verbatim.
	re := regexp.MustCompile(`^\d{2}/\d{2}/\d{4}: `)
	if !re.MatchString(note.AssistantNotes) {
		t.Errorf("AssistantNotes = %q, want DD/MM/YYYY: prefix", note.AssistantNotes)
	}
	if !strings.HasSuffix(note.AssistantNotes, ": elaboration about slices") {
		t.Errorf("AssistantNotes = %q, want generated text after the prefix", note.AssistantNotes)
	}

	// The raw body is what goes to the assistant as the prompt.
	if len(stub.prompts) != 1 || stub.prompts[0] != "go slices grow" {
		t.Errorf("assistant prompts = %v, want [go slices grow]", stub.prompts)
	}

	stored, err := repo.GetNoteByID(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("GetNoteByID() error = %v", err)
	}
	if stored.AssistantNotes != note.AssistantNotes {
		t.Errorf("stored commentary = %q, want %q", stored.AssistantNotes, note.AssistantNotes)
	}
}

func TestCreate_GenerationFailurePersistsNothing(t *testing.T) {
	repo := newMockNoteRepo()
	stub := &stubAssistant{err: errors.New("upstream unavailable")}
	svc := NewNoteService(repo, stub, testLogger())

	_, err := svc.Create(context.Background(), "title", "author-1", "body")
	if err == nil {
		t.Fatal("Create() error = nil, want generation failure")
	}

	n, _ := repo.CountNotes(context.Background())
	if n != 0 {
		t.Errorf("note count = %d after failed generation, want 0", n)
	}
}

func TestListByAuthor_NewestFirst(t *testing.T) {
	repo := newMockNoteRepo()
	stub := &stubAssistant{response: "ok"}
	svc := NewNoteService(repo, stub, testLogger())

	for _, title := range []string{"A", "B", "C"} {
		if _, err := svc.Create(context.Background(), title, "author-1", "body "+title); err != nil {
			t.Fatalf("Create(%s) error = %v", title, err)
		}
	}

	notes, err := svc.ListByAuthor(context.Background(), "author-1")
	if err != nil {
		t.Fatalf("ListByAuthor() error = %v", err)
	}

	got := make([]string, len(notes))
	for i, note := range notes {
		got[i] = note.Name
	}
	want := []string{"C", "B", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("listing order = %v, want %v", got, want)
		}
	}
}

func TestListByAuthor_ScopedToAuthor(t *testing.T) {
	repo := newMockNoteRepo()
	svc := NewNoteService(repo, &stubAssistant{response: "ok"}, testLogger())

	if _, err := svc.Create(context.Background(), "mine", "author-1", "b"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(context.Background(), "theirs", "author-2", "b"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	notes, err := svc.ListByAuthor(context.Background(), "author-1")
	if err != nil {
		t.Fatalf("ListByAuthor() error = %v", err)
	}
	if len(notes) != 1 || notes[0].Name != "mine" {
		t.Errorf("listing = %v, want only the author's own note", notes)
	}
}

func TestRename_TitleOnly(t *testing.T) {
	repo := newMockNoteRepo()
	svc := NewNoteService(repo, &stubAssistant{response: "commentary"}, testLogger())

	note, err := svc.Create(context.Background(), "old", "author-1", "the body")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Rename(context.Background(), note.ID, "new"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	after, err := svc.GetByID(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if after.Name != "new" {
		t.Errorf("Name = %q, want %q", after.Name, "new")
	}
	if after.Body != note.Body {
		t.Errorf("Body changed: %q → %q", note.Body, after.Body)
	}
	if after.AssistantNotes != note.AssistantNotes {
		t.Errorf("commentary changed: %q → %q", note.AssistantNotes, after.AssistantNotes)
	}
}

func TestRename_NotFound(t *testing.T) {
	svc := NewNoteService(newMockNoteRepo(), &stubAssistant{}, testLogger())

	err := svc.Rename(context.Background(), "nope", "title")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Rename(nope) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMockNoteRepo()
	svc := NewNoteService(repo, &stubAssistant{response: "c"}, testLogger())

	note, err := svc.Create(context.Background(), "t", "author-1", "b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), note.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	notes, err := svc.ListByAuthor(context.Background(), "author-1")
	if err != nil {
		t.Fatalf("ListByAuthor() error = %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("listing has %d notes after delete, want 0", len(notes))
	}

	if err := svc.Delete(context.Background(), note.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
