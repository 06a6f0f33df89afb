// Package assistant wraps the external text-generation API.
//
// The app sends every new note to a chat-completions endpoint and stores the
// response as the note's commentary. The model, the response format, and the
// system instruction are all fixed — there is exactly one kind of call this
// client ever makes.
package assistant

import "context"

// Client generates commentary for a note.
//
// One method, behind an interface, so the note service can be tested with a
// stub instead of a live API. The production implementation is OpenAIClient.
type Client interface {
	// Generate sends the raw note text as the prompt and returns the
	// generated commentary. Synchronous: it blocks until the service
	// responds or the request context / client timeout fires. A single
	// attempt — no retries — and any failure is the caller's to surface.
	Generate(ctx context.Context, prompt string) (string, error)
}
