package handler

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/sakif/notebot/internal/apperror"
	"github.com/sakif/notebot/internal/model"
	"github.com/sakif/notebot/internal/service"
	"github.com/sakif/notebot/internal/session"
)

// noteView is a note prepared for display: the assistant commentary is
// already converted from markdown to HTML.
type noteView struct {
	ID             string
	Name           string
	Body           string
	CommentaryHTML template.HTML
}

// notesData feeds notes.html.
type notesData struct {
	NotLogin bool // render the "please log in" variant
	Notes    []noteView
}

// formData feeds form.html, shared by the new-note and edit flows.
type formData struct {
	Edit bool
	Note *model.Note // pre-fill values when editing; empty note otherwise
}

// NoteHandler serves the notes listing and the note CRUD routes.
//
// Every route here is session-gated the same way: an anonymous visitor gets
// the "please log in" rendering of the notes page (HTTP 200), never an
// error status.
type NoteHandler struct {
	notes    *service.NoteService
	auth     *service.AuthService
	renderer *Renderer
	logger   *slog.Logger
}

// NewNoteHandler creates a NoteHandler.
func NewNoteHandler(
	notes *service.NoteService,
	auth *service.AuthService,
	renderer *Renderer,
	logger *slog.Logger,
) *NoteHandler {
	return &NoteHandler{
		notes:    notes,
		auth:     auth,
		renderer: renderer,
		logger:   logger,
	}
}

// currentUser resolves the session to a full user record.
// Returns (nil, false) for anonymous requests; the caller renders the
// not-logged-in page. A session naming a user that no longer exists is
// treated the same way.
func (h *NoteHandler) currentUser(ctx context.Context) (*model.User, bool) {
	name, ok := session.NameFromContext(ctx)
	if !ok {
		return nil, false
	}

	user, err := h.auth.GetUser(ctx, name)
	if err != nil {
		return nil, false
	}
	return user, true
}

// renderNotLogin renders the notes page in its "please log in" variant.
func (h *NoteHandler) renderNotLogin(w http.ResponseWriter) {
	h.renderer.Render(w, "notes.html", notesData{NotLogin: true})
}

// HandleList renders the user's notes, most recently created first, with
// each note's assistant commentary converted from markdown for display.
//
// HTTP: GET|POST /notes
// (POST is accepted and behaves identically — a long-standing quirk of the
// route registration that clients may depend on.)
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r.Context())
	if !ok {
		h.renderNotLogin(w)
		return
	}

	notes, err := h.notes.ListByAuthor(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("listing notes failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	views := make([]noteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, noteView{
			ID:             n.ID,
			Name:           n.Name,
			Body:           n.Body,
			CommentaryHTML: markdownToHTML(n.AssistantNotes),
		})
	}

	h.renderer.Render(w, "notes.html", notesData{Notes: views})
}

// HandleNewPage renders the blank note creation form.
//
// HTTP: GET /new
func (h *NoteHandler) HandleNewPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(r.Context()); !ok {
		h.renderNotLogin(w)
		return
	}
	h.renderer.Render(w, "form.html", formData{Note: &model.Note{}})
}

// HandleCreate runs the note creation protocol: read the form, generate the
// assistant commentary (synchronously — this request waits on the external
// service), persist, and redirect to the listing.
//
// HTTP: POST /new
// FORM: name (title), notes (body)
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r.Context())
	if !ok {
		h.renderNotLogin(w)
		return
	}

	title := r.FormValue("name")
	body := r.FormValue("notes")

	if _, err := h.notes.Create(r.Context(), title, user.ID, body); err != nil {
		// Generation and storage failures alike surface as a plain 500 —
		// there is no retry and no partial save.
		h.logger.Error("note creation failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

// HandleEditPage renders the form pre-filled for editing.
//
// HTTP: GET /edit/{id}
func (h *NoteHandler) HandleEditPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(r.Context()); !ok {
		h.renderNotLogin(w)
		return
	}

	id := r.PathValue("id")
	note, err := h.notes.GetByID(r.Context(), id)
	if err != nil {
		h.writeNoteError(w, r, id, err)
		return
	}

	h.renderer.Render(w, "form.html", formData{Edit: true, Note: note})
}

// HandleEdit overwrites only the note's title from the form input. The body
// and the assistant commentary are not updated.
//
// There is no check that the note belongs to the session's user — any
// authenticated user may edit any note id. Inherited behaviour, flagged in
// DESIGN.md rather than silently changed.
//
// HTTP: POST /edit/{id}
// FORM: name (title)
func (h *NoteHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(r.Context()); !ok {
		h.renderNotLogin(w)
		return
	}

	id := r.PathValue("id")
	if err := h.notes.Rename(r.Context(), id, r.FormValue("name")); err != nil {
		h.writeNoteError(w, r, id, err)
		return
	}

	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

// HandleDelete deletes the identified note unconditionally (same ownership
// caveat as HandleEdit) and redirects to the listing.
//
// HTTP: GET /delete/{id}
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(r.Context()); !ok {
		h.renderNotLogin(w)
		return
	}

	id := r.PathValue("id")
	if err := h.notes.Delete(r.Context(), id); err != nil {
		h.writeNoteError(w, r, id, err)
		return
	}

	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

// writeNoteError maps note lookup/mutation failures to responses: unknown
// ids become a 404, everything else a plain 500.
func (h *NoteHandler) writeNoteError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	h.logger.Error("note operation failed",
		slog.String("id", id),
		slog.String("error", err.Error()),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
