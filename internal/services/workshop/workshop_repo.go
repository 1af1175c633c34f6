package workshop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrWorkshopNotFound = errors.New("workshop not found")

const workshopColumns = `id, title, description, date, time, location, audience, duration, fee,
        registration_deadline, learning_outcomes, status, created_at, updated_at`

// WorkshopRepo handles database operations for workshops
type WorkshopRepo interface {
	Create(ctx context.Context, req *CreateWorkshopRequest) (*Workshop, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Workshop, error)
	List(ctx context.Context) ([]*Workshop, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateWorkshopRequest) (*Workshop, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Workshop, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresWorkshopRepo is the sqlx-backed WorkshopRepo
type PostgresWorkshopRepo struct {
	db *sqlx.DB
}

func NewWorkshopRepo(db *sqlx.DB) *PostgresWorkshopRepo {
	return &PostgresWorkshopRepo{db: db}
}

func (r *PostgresWorkshopRepo) Create(ctx context.Context, req *CreateWorkshopRequest) (*Workshop, error) {
	query := `
        INSERT INTO workshops (title, description, date, time, location, audience, duration, fee,
            registration_deadline, learning_outcomes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + workshopColumns + `
    `

	var w Workshop
	err := r.db.GetContext(ctx, &w, query,
		req.Title, req.Description, req.Date, req.Time, req.Location, req.Audience,
		req.Duration, req.Fee, req.RegistrationDeadline, pq.StringArray(req.LearningOutcomes))
	if err != nil {
		return nil, fmt.Errorf("failed to create workshop: %w", err)
	}

	return &w, nil
}

func (r *PostgresWorkshopRepo) GetByID(ctx context.Context, id uuid.UUID) (*Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE id = $1`

	var w Workshop
	err := r.db.GetContext(ctx, &w, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}

	return &w, nil
}

// List retrieves all workshops, soonest first
func (r *PostgresWorkshopRepo) List(ctx context.Context) ([]*Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops ORDER BY date ASC`

	var workshops []*Workshop
	err := r.db.SelectContext(ctx, &workshops, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}

	return workshops, nil
}

func (r *PostgresWorkshopRepo) Update(ctx context.Context, id uuid.UUID, req *UpdateWorkshopRequest) (*Workshop, error) {
	setParts := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Date != nil {
		addSet("date", *req.Date)
	}
	if req.Time != nil {
		addSet("time", *req.Time)
	}
	if req.Location != nil {
		addSet("location", *req.Location)
	}
	if req.Audience != nil {
		addSet("audience", *req.Audience)
	}
	if req.Duration != nil {
		addSet("duration", *req.Duration)
	}
	if req.Fee != nil {
		addSet("fee", *req.Fee)
	}
	if req.RegistrationDeadline != nil {
		addSet("registration_deadline", *req.RegistrationDeadline)
	}
	if req.LearningOutcomes != nil {
		addSet("learning_outcomes", pq.StringArray(*req.LearningOutcomes))
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts = append(setParts, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE workshops
        SET %s
        WHERE id = $%d
        RETURNING `+workshopColumns+`
    `, strings.Join(setParts, ", "), len(args))

	var w Workshop
	err := r.db.GetContext(ctx, &w, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to update workshop: %w", err)
	}

	return &w, nil
}

func (r *PostgresWorkshopRepo) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Workshop, error) {
	query := `
        UPDATE workshops
        SET status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING ` + workshopColumns + `
    `

	var w Workshop
	err := r.db.GetContext(ctx, &w, query, status, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to set workshop status: %w", err)
	}

	return &w, nil
}

func (r *PostgresWorkshopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM workshops WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrWorkshopNotFound
	}

	return nil
}
