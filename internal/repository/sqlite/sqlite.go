// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — the whole store is a single file next to
// the binary. No separate database server to install, configure, or manage.
// For an app of this size that is exactly the right amount of
// infrastructure, and ":memory:" gives tests a free, isolated database.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite sources — works everywhere Go works.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// BLANK IMPORT:
	// Side-effect only — the package's init() registers itself with
	// database/sql as a driver named "sqlite". After this import,
	// sql.Open("sqlite", ...) knows how to talk to SQLite.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements both repository
// interfaces (users and notes).
//
// This is the app's single gateway to durable storage: it is constructed
// once at startup, owned by the server, and injected into the services as
// the repository interfaces. There is no other write path.
type DB struct {
	conn *sql.DB
}

// New opens the database at path and runs migrations.
//
// path examples:
//   - "data/notebot.db" → file-based database (persistent)
//   - ":memory:"        → in-memory database (tests, lost on close)
//
// sql.Open does not actually connect — it creates a pool manager. We Ping
// immediately so a bad path surfaces here instead of on the first query.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// IN-MEMORY GOTCHA:
	// Each pool connection to ":memory:" is a SEPARATE empty database. Pin
	// the pool to one connection so every query sees the same data.
	if strings.Contains(path, ":memory:") {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode lets reads proceed while a write is in flight — default
	// SQLite locks the whole file during writes, which hurts a web server.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite (backwards compatibility).
	// notes.author_id references users(id), so turn them on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS makes this
// idempotent — safe to run on every startup, which is this app's whole
// migration story (there is no versioned migration history to track for
// two tables).
//
// Column names (notes, assistant_bot_notes) are kept from the original
// schema so an existing database file keeps working.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			author_id           TEXT REFERENCES users(id),
			notes               TEXT NOT NULL DEFAULT '',
			assistant_bot_notes TEXT NOT NULL DEFAULT '',
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_notes_author_id ON notes(author_id);
	`)
	if err != nil {
		return fmt.Errorf("creating notes table: %w", err)
	}

	return nil
}
