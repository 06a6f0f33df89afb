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

// Compile-time check that *DB implements repository.UserRepository.
// If a method goes missing, the compiler errors here instead of at some
// distant call site.
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user.
//
// The pointer receiver matters: after Create returns, the caller's struct
// has the generated ID and timestamp filled in.
//
// The UNIQUE constraint on name is the database-level backstop for the
// uniqueness rule; the service checks availability first, so a constraint
// violation here only happens if two sign-ups race on the same name.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, password, created_at)
		 VALUES (?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Password,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user %q: %w", user.Name, err)
	}

	return nil
}

// GetUserByName retrieves the user with exactly that name.
//
// SQLite's default comparison for TEXT is case-sensitive, which is what we
// want: "Alice" and "alice" are different accounts.
//
// sql.ErrNoRows is not really an error — it means "no such user". We
// translate it to the app's NotFound so callers can branch on errors.Is
// without importing database/sql.
func (db *DB) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, password, created_at
		 FROM users WHERE name = ?`,
		name,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Password,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", name)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", name, err)
	}

	return &u, nil
}

// CountUsers returns the total number of registered users.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting users: %w", err)
	}
	return n, nil
}
