package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const defaultUsersTable = "users"

// UserRepository is a Postgres implementation for user accounts.
type UserRepository struct {
	db    DBTX
	table string
}

// NewUserRepository constructs a repository.
func NewUserRepository(db DBTX, opts ...UserOption) *UserRepository {
	repo := &UserRepository{db: db, table: defaultUsersTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// UserOption configures the repository.
type UserOption func(*UserRepository)

// WithUsersTable overrides the default table name.
func WithUsersTable(table string) UserOption {
	return func(repo *UserRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	if r == nil || r.db == nil {
		return errors.New("user repo: nil db")
	}
	if user == nil {
		return errors.New("user repo: nil user")
	}
	if user.ID == "" || user.Email == "" || user.PasswordHash == "" {
		return errors.New("user repo: id, email and password hash are required")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, email, password_hash, first_name, last_name)
VALUES ($1, $2, $3, $4, $5)`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName)
	return err
}

// GetByID loads a user by id. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("user repo: nil db")
	}
	if id == "" {
		return nil, errors.New("user repo: empty id")
	}
	return r.getBy(ctx, "id", id)
}

// GetByEmail loads a user by email. Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("user repo: nil db")
	}
	if email == "" {
		return nil, errors.New("user repo: empty email")
	}
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`
SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
FROM %s
WHERE %s = $1
LIMIT 1`, r.table, column)

	var user User
	if err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}
