package registration

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrationRepo struct {
	registrations map[uuid.UUID]*Registration
	workshops     map[uuid.UUID]bool
	clock         time.Time
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		registrations: map[uuid.UUID]*Registration{},
		workshops:     map[uuid.UUID]bool{},
		clock:         time.Now(),
	}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, req *CreateRegistrationRequest, userID *string) (*Registration, error) {
	if !f.workshops[req.WorkshopID] {
		return nil, ErrWorkshopNotFound
	}

	reg := &Registration{
		ID:               uuid.New(),
		UserID:           userID,
		WorkshopID:       req.WorkshopID,
		Name:             req.Name,
		Email:            req.Email,
		WorkshopInterest: req.WorkshopInterest,
		Status:           StatusPending,
		CreatedAt:        f.clock,
	}
	f.clock = f.clock.Add(time.Second)
	f.registrations[reg.ID] = reg
	return reg, nil
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, id uuid.UUID) (*Registration, error) {
	reg, ok := f.registrations[id]
	if !ok {
		return nil, ErrRegistrationNotFound
	}
	return reg, nil
}

func (f *fakeRegistrationRepo) List(_ context.Context, filter *ListFilter) ([]*Registration, error) {
	list := []*Registration{}
	for _, reg := range f.registrations {
		if filter != nil && filter.WorkshopID != nil && reg.WorkshopID != *filter.WorkshopID {
			continue
		}
		if filter != nil && filter.Status != nil && reg.Status != *filter.Status {
			continue
		}
		list = append(list, reg)
	}
	return list, nil
}

func (f *fakeRegistrationRepo) ListByUser(_ context.Context, userID string) ([]*Registration, error) {
	list := []*Registration{}
	for _, reg := range f.registrations {
		if reg.UserID != nil && *reg.UserID == userID {
			list = append(list, reg)
		}
	}
	return list, nil
}

func (f *fakeRegistrationRepo) SetStatus(_ context.Context, id uuid.UUID, status Status) (*Registration, error) {
	reg, ok := f.registrations[id]
	if !ok {
		return nil, ErrRegistrationNotFound
	}
	reg.Status = status
	return reg, nil
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.registrations[id]; !ok {
		return ErrRegistrationNotFound
	}
	delete(f.registrations, id)
	return nil
}

func (f *fakeRegistrationRepo) Count(_ context.Context) (int, error) {
	return len(f.registrations), nil
}

func (f *fakeRegistrationRepo) CountSince(_ context.Context, since time.Time) (int, error) {
	count := 0
	for _, reg := range f.registrations {
		if !reg.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRegistrationRepo) InterestBreakdown(_ context.Context) ([]InterestCount, error) {
	counts := map[string]int{}
	for _, reg := range f.registrations {
		counts[reg.WorkshopInterest]++
	}

	breakdown := []InterestCount{}
	for interest, count := range counts {
		breakdown = append(breakdown, InterestCount{Interest: interest, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Count > breakdown[j].Count })
	return breakdown, nil
}

func (f *fakeRegistrationRepo) Recent(_ context.Context, limit int) ([]*Registration, error) {
	list := []*Registration{}
	for _, reg := range f.registrations {
		list = append(list, reg)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeRegistrationRepo) register(t *testing.T, svc *RegistrationService, workshopID uuid.UUID, interest string) *Registration {
	t.Helper()

	reg, err := svc.Create(context.Background(), &CreateRegistrationRequest{
		WorkshopID:       workshopID,
		Name:             "Visitor",
		Email:            "visitor@example.com",
		WorkshopInterest: interest,
	}, nil)
	require.NoError(t, err)
	return reg
}

func TestCreateRegistrationValidation(t *testing.T) {
	t.Parallel()

	repo := newFakeRegistrationRepo()
	workshopID := uuid.New()
	repo.workshops[workshopID] = true
	svc := NewRegistrationService(repo)

	_, err := svc.Create(context.Background(), &CreateRegistrationRequest{WorkshopID: workshopID, Email: "a@b.com"}, nil)
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &CreateRegistrationRequest{WorkshopID: workshopID, Name: "Visitor"}, nil)
	assert.Error(t, err)
}

func TestCreateRegistrationUnknownWorkshop(t *testing.T) {
	t.Parallel()

	svc := NewRegistrationService(newFakeRegistrationRepo())

	_, err := svc.Create(context.Background(), &CreateRegistrationRequest{
		WorkshopID: uuid.New(),
		Name:       "Visitor",
		Email:      "visitor@example.com",
	}, nil)
	assert.ErrorIs(t, err, ErrWorkshopNotFound)
}

func TestCreateRegistrationNormalizesEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeRegistrationRepo()
	workshopID := uuid.New()
	repo.workshops[workshopID] = true
	svc := NewRegistrationService(repo)

	reg, err := svc.Create(context.Background(), &CreateRegistrationRequest{
		WorkshopID: workshopID,
		Name:       "Visitor",
		Email:      " Visitor@Example.COM ",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "visitor@example.com", reg.Email)
}

func TestSetRegistrationStatus(t *testing.T) {
	t.Parallel()

	repo := newFakeRegistrationRepo()
	workshopID := uuid.New()
	repo.workshops[workshopID] = true
	svc := NewRegistrationService(repo)

	reg := repo.register(t, svc, workshopID, "astronomy")

	updated, err := svc.SetStatus(context.Background(), reg.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, updated.Status)

	_, err = svc.SetStatus(context.Background(), reg.ID, Status("waitlisted"))
	assert.Error(t, err)

	_, err = svc.SetStatus(context.Background(), uuid.New(), StatusRejected)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestDashboardStats(t *testing.T) {
	t.Parallel()

	repo := newFakeRegistrationRepo()
	workshopID := uuid.New()
	repo.workshops[workshopID] = true
	svc := NewRegistrationService(repo)

	repo.register(t, svc, workshopID, "astronomy")
	repo.register(t, svc, workshopID, "astronomy")
	repo.register(t, svc, workshopID, "chemistry")

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRegistrations)
	assert.Equal(t, 3, stats.RecentRegistrations)
	assert.Equal(t, "astronomy", stats.MostPopularInterest)
	assert.Equal(t, 2, stats.PopularInterestCount)
	assert.Len(t, stats.InterestBreakdown, 2)
	assert.Len(t, stats.RecentRegistrationsList, 3)
}

func TestDashboardStatsEmpty(t *testing.T) {
	t.Parallel()

	svc := NewRegistrationService(newFakeRegistrationRepo())

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalRegistrations)
	assert.Empty(t, stats.MostPopularInterest)
	assert.Zero(t, stats.PopularInterestCount)
}
