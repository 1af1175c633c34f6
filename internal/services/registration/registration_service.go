package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// recentWindow is how far back the dashboard counts "recent" sign-ups.
const recentWindow = 7 * 24 * time.Hour

const recentListLimit = 5

// RegistrationService contains business logic for workshop registrations
type RegistrationService struct {
	repo RegistrationRepo
}

func NewRegistrationService(repo RegistrationRepo) *RegistrationService {
	return &RegistrationService{repo: repo}
}

// Create records a workshop registration. userID is nil for anonymous
// interest-form submissions.
func (s *RegistrationService) Create(ctx context.Context, req *CreateRegistrationRequest, userID *string) (*Registration, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("registrant name is required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("registrant email is required")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	reg, err := s.repo.Create(ctx, req, userID)
	if err != nil {
		if errors.Is(err, ErrWorkshopNotFound) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return reg, nil
}

func (s *RegistrationService) GetByID(ctx context.Context, id uuid.UUID) (*Registration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return reg, nil
}

func (s *RegistrationService) List(ctx context.Context, filter *ListFilter) ([]*Registration, error) {
	registrations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) ListByUser(ctx context.Context, userID string) ([]*Registration, error) {
	registrations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user registrations: %w", err)
	}

	return registrations, nil
}

// SetStatus moves a registration between pending, approved and rejected.
func (s *RegistrationService) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Registration, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("invalid registration status %q", status)
	}

	reg, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to set registration status: %w", err)
	}

	return reg, nil
}

func (s *RegistrationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	return nil
}

// DashboardStats aggregates registration activity for the admin dashboard.
func (s *RegistrationService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	recent, err := s.repo.CountSince(ctx, time.Now().Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent registrations: %w", err)
	}

	breakdown, err := s.repo.InterestBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate interest breakdown: %w", err)
	}

	recentList, err := s.repo.Recent(ctx, recentListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent registrations: %w", err)
	}

	stats := &DashboardStats{
		TotalRegistrations:      total,
		RecentRegistrations:     recent,
		InterestBreakdown:       breakdown,
		RecentRegistrationsList: recentList,
	}
	// Breakdown is already sorted by count, descending.
	if len(breakdown) > 0 {
		stats.MostPopularInterest = breakdown[0].Interest
		stats.PopularInterestCount = breakdown[0].Count
	}

	return stats, nil
}
