package model

import "time"

// Note represents a user-authored note plus the commentary the assistant
// generated for it.
//
// FIELD LIFECYCLE:
//   - Name is the title; it is the only field the edit flow may change.
//   - Body is the raw text the user submitted. Immutable after creation.
//   - AssistantNotes is set exactly once, at creation time, to the assistant's
//     output prefixed with the current date ("DD/MM/YYYY: ..."). It is never
//     regenerated — editing a note does not re-run the assistant.
//
// The db column names (notes, assistant_bot_notes) are kept from the original
// schema so an existing database file keeps working.
type Note struct {
	ID             string    `json:"id"             db:"id"`
	Name           string    `json:"name"           db:"name"`
	AuthorID       string    `json:"authorId"       db:"author_id"`
	Body           string    `json:"notes"          db:"notes"`
	AssistantNotes string    `json:"assistantNotes" db:"assistant_bot_notes"`
	CreatedAt      time.Time `json:"createdAt"      db:"created_at"`
}
