package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrWorkshopNotFound is surfaced when a registration references a
	// workshop that does not exist (foreign key violation).
	ErrWorkshopNotFound = errors.New("workshop not found")
)

const registrationColumns = `id, user_id, workshop_id, name, email, phone, age, workshop_interest,
        message, agree_to_terms, status, created_at`

// RegistrationRepo handles database operations for registrations
type RegistrationRepo interface {
	Create(ctx context.Context, req *CreateRegistrationRequest, userID *string) (*Registration, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Registration, error)
	List(ctx context.Context, filter *ListFilter) ([]*Registration, error)
	ListByUser(ctx context.Context, userID string) ([]*Registration, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Registration, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	InterestBreakdown(ctx context.Context) ([]InterestCount, error)
	Recent(ctx context.Context, limit int) ([]*Registration, error)
}

// PostgresRegistrationRepo is the sqlx-backed RegistrationRepo
type PostgresRegistrationRepo struct {
	db *sqlx.DB
}

func NewRegistrationRepo(db *sqlx.DB) *PostgresRegistrationRepo {
	return &PostgresRegistrationRepo{db: db}
}

// Create inserts a registration. The workshop reference is enforced by the
// foreign key; a violation comes back as ErrWorkshopNotFound.
func (r *PostgresRegistrationRepo) Create(ctx context.Context, req *CreateRegistrationRequest, userID *string) (*Registration, error) {
	query := `
        INSERT INTO registrations (user_id, workshop_id, name, email, phone, age,
            workshop_interest, message, agree_to_terms)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + registrationColumns + `
    `

	var reg Registration
	err := r.db.GetContext(ctx, &reg, query,
		userID, req.WorkshopID, req.Name, req.Email, req.Phone, req.Age,
		req.WorkshopInterest, req.Message, req.AgreeToTerms)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return &reg, nil
}

func (r *PostgresRegistrationRepo) GetByID(ctx context.Context, id uuid.UUID) (*Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	var reg Registration
	err := r.db.GetContext(ctx, &reg, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return &reg, nil
}

// List retrieves registrations, newest first, optionally filtered by
// workshop and status.
func (r *PostgresRegistrationRepo) List(ctx context.Context, filter *ListFilter) ([]*Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE 1=1`
	args := []interface{}{}

	if filter != nil && filter.WorkshopID != nil {
		args = append(args, *filter.WorkshopID)
		query += fmt.Sprintf(" AND workshop_id = $%d", len(args))
	}
	if filter != nil && filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	var registrations []*Registration
	err := r.db.SelectContext(ctx, &registrations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	return registrations, nil
}

func (r *PostgresRegistrationRepo) ListByUser(ctx context.Context, userID string) ([]*Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 ORDER BY created_at DESC`

	var registrations []*Registration
	err := r.db.SelectContext(ctx, &registrations, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user registrations: %w", err)
	}

	return registrations, nil
}

func (r *PostgresRegistrationRepo) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Registration, error) {
	query := `
        UPDATE registrations
        SET status = $1
        WHERE id = $2
        RETURNING ` + registrationColumns + `
    `

	var reg Registration
	err := r.db.GetContext(ctx, &reg, query, status, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to set registration status: %w", err)
	}

	return &reg, nil
}

func (r *PostgresRegistrationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM registrations WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

func (r *PostgresRegistrationRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM registrations`)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}

func (r *PostgresRegistrationRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM registrations WHERE created_at >= $1`, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent registrations: %w", err)
	}

	return count, nil
}

// InterestBreakdown groups registrations by interest category, most popular
// first.
func (r *PostgresRegistrationRepo) InterestBreakdown(ctx context.Context) ([]InterestCount, error) {
	query := `
        SELECT workshop_interest, COUNT(*) AS count
        FROM registrations
        GROUP BY workshop_interest
        ORDER BY count DESC
    `

	var breakdown []InterestCount
	err := r.db.SelectContext(ctx, &breakdown, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate interest breakdown: %w", err)
	}

	return breakdown, nil
}

func (r *PostgresRegistrationRepo) Recent(ctx context.Context, limit int) ([]*Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY created_at DESC LIMIT $1`

	var registrations []*Registration
	err := r.db.SelectContext(ctx, &registrations, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent registrations: %w", err)
	}

	return registrations, nil
}
