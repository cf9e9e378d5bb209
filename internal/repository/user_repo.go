package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"accommodation_finder/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, email, password_hash, role) VALUES (?, ?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, email, password_hash, role FROM users WHERE username = ?`
	existsUsernameSQL       = `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`
	existsEmailSQL          = `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`
)

// ExistsByUsername reports whether a user with the given username exists.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, existsUsernameSQL, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("check username %q: %w", username, err)
	}
	return exists, nil
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, existsEmailSQL, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check email %q: %w", email, err)
	}
	return exists, nil
}

// Create inserts a new user and returns its ID. A unique-constraint
// violation on username/email is mapped to the matching sentinel so a
// race-lost insert reports the same outcome as the pre-check.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if dup := uniqueViolation(err); dup != nil {
			return 0, dup
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// uniqueViolation maps sqlite unique-constraint failures on the users
// table to sentinel errors. The modernc driver surfaces the violated
// column as "UNIQUE constraint failed: users.<column>".
func uniqueViolation(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: users.username"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "UNIQUE constraint failed: users.email"):
		return ErrDuplicateEmail
	default:
		return nil
	}
}
