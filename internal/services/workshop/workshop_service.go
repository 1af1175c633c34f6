package workshop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// WorkshopService contains business logic for workshops
type WorkshopService struct {
	repo WorkshopRepo
}

func NewWorkshopService(repo WorkshopRepo) *WorkshopService {
	return &WorkshopService{repo: repo}
}

func (s *WorkshopService) Create(ctx context.Context, req *CreateWorkshopRequest) (*Workshop, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("workshop title is required")
	}
	if req.Date == "" {
		return nil, fmt.Errorf("workshop date is required")
	}

	w, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create workshop: %w", err)
	}

	return w, nil
}

func (s *WorkshopService) GetByID(ctx context.Context, id uuid.UUID) (*Workshop, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkshopNotFound) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}

	return w, nil
}

// List returns all workshops ordered by date
func (s *WorkshopService) List(ctx context.Context) ([]*Workshop, error) {
	workshops, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}

	return workshops, nil
}

func (s *WorkshopService) Update(ctx context.Context, id uuid.UUID, req *UpdateWorkshopRequest) (*Workshop, error) {
	w, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrWorkshopNotFound) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to update workshop: %w", err)
	}

	return w, nil
}

// SetStatus moves a workshop between pending, ongoing and completed.
func (s *WorkshopService) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Workshop, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("invalid workshop status %q", status)
	}

	w, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, ErrWorkshopNotFound) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to set workshop status: %w", err)
	}

	return w, nil
}

func (s *WorkshopService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrWorkshopNotFound) {
			return ErrWorkshopNotFound
		}
		return fmt.Errorf("failed to delete workshop: %w", err)
	}

	return nil
}
