// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account.
//
// WHY A PLAINTEXT Password FIELD?
// This app intentionally stores and compares passwords in plaintext — a known
// weakness inherited from the product's original behaviour. Fixing it (bcrypt
// et al.) is explicitly out of scope here. Do not copy this into anything
// that handles real credentials.
//
// The `json:"-"` tag keeps the password out of any JSON a User might ever be
// encoded into.
type User struct {
	ID        string    `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"` // display name, globally unique (case-sensitive)
	Password  string    `json:"-"         db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
