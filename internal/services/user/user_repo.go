package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = "id, name, email, phone, password_hash, role, created_at, updated_at"

// UserRepo handles database operations for user accounts
type UserRepo interface {
	Create(ctx context.Context, name, email, phone, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, id string, params *UpdateUserParams) (*User, error)
	SetRole(ctx context.Context, id string, role Role) (*User, error)
	Delete(ctx context.Context, id string) error
}

// PostgresUserRepo is the sqlx-backed UserRepo
type PostgresUserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// Create inserts a new account with the default role. A concurrent insert of
// the same email surfaces as ErrUserAlreadyExists via the unique index.
func (r *PostgresUserRepo) Create(ctx context.Context, name, email, phone, passwordHash string) (*User, error) {
	query := `
        INSERT INTO users (name, email, phone, password_hash, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns + `
    `

	var u User
	err := r.db.GetContext(ctx, &u, query, name, email, phone, passwordHash, RoleUser)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &u, nil
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (r *PostgresUserRepo) List(ctx context.Context) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	var users []*User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// UpdateProfile updates the allow-listed profile fields in a single statement.
func (r *PostgresUserRepo) UpdateProfile(ctx context.Context, id string, params *UpdateUserParams) (*User, error) {
	setParts := []string{}
	args := []interface{}{}

	if params.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *params.Name)
	}

	if params.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", len(args)+1))
		args = append(args, *params.Phone)
	}

	if params.PasswordHash != nil {
		setParts = append(setParts, fmt.Sprintf("password_hash = $%d", len(args)+1))
		args = append(args, *params.PasswordHash)
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts = append(setParts, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE users
        SET %s
        WHERE id = $%d
        RETURNING `+userColumns+`
    `, strings.Join(setParts, ", "), len(args))

	var u User
	err := r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &u, nil
}

// SetRole overwrites the account's role. Single-row write; no ordering is
// enforced between roles.
func (r *PostgresUserRepo) SetRole(ctx context.Context, id string, role Role) (*User, error) {
	query := `
        UPDATE users
        SET role = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING ` + userColumns + `
    `

	var u User
	err := r.db.GetContext(ctx, &u, query, role, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set user role: %w", err)
	}

	return &u, nil
}

func (r *PostgresUserRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
