package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"innovation_showcase/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL = `INSERT INTO users (id, username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	selectUserColumns       = `SELECT id, username, email, password_hash, role, created_at FROM users`
	selectUserByIDSQL       = selectUserColumns + ` WHERE id = ?`
	selectUserByUsernameSQL = selectUserColumns + ` WHERE username = ?`
	selectUserByEmailSQL    = selectUserColumns + ` WHERE email = ?`
)

// Create inserts a new user. A taken username or email yields ErrDuplicate.
func (r *UserSQLite) Create(ctx context.Context, u models.User) error {
	created := u.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Username, u.Email, u.PasswordHash, string(u.Role), created.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", u.Username, ErrDuplicate)
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

func (r *UserSQLite) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, selectUserByUsernameSQL, username)
}

func (r *UserSQLite) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

// getOne runs a single-row user query. Returns (nil, nil) if not found.
func (r *UserSQLite) getOne(ctx context.Context, query, arg string) (*models.User, error) {
	var (
		u    models.User
		role string
	)
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", arg, err)
	}
	u.Role = models.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
