package workshop

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkshopRepo struct {
	workshops map[uuid.UUID]*Workshop
}

func newFakeWorkshopRepo() *fakeWorkshopRepo {
	return &fakeWorkshopRepo{workshops: map[uuid.UUID]*Workshop{}}
}

func (f *fakeWorkshopRepo) Create(_ context.Context, req *CreateWorkshopRequest) (*Workshop, error) {
	w := &Workshop{
		ID:               uuid.New(),
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		LearningOutcomes: pq.StringArray(req.LearningOutcomes),
		Status:           StatusPending,
	}
	f.workshops[w.ID] = w
	return w, nil
}

func (f *fakeWorkshopRepo) GetByID(_ context.Context, id uuid.UUID) (*Workshop, error) {
	w, ok := f.workshops[id]
	if !ok {
		return nil, ErrWorkshopNotFound
	}
	return w, nil
}

func (f *fakeWorkshopRepo) List(_ context.Context) ([]*Workshop, error) {
	list := []*Workshop{}
	for _, w := range f.workshops {
		list = append(list, w)
	}
	return list, nil
}

func (f *fakeWorkshopRepo) Update(_ context.Context, id uuid.UUID, req *UpdateWorkshopRequest) (*Workshop, error) {
	w, ok := f.workshops[id]
	if !ok {
		return nil, ErrWorkshopNotFound
	}
	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Date != nil {
		w.Date = *req.Date
	}
	return w, nil
}

func (f *fakeWorkshopRepo) SetStatus(_ context.Context, id uuid.UUID, status Status) (*Workshop, error) {
	w, ok := f.workshops[id]
	if !ok {
		return nil, ErrWorkshopNotFound
	}
	w.Status = status
	return w, nil
}

func (f *fakeWorkshopRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.workshops[id]; !ok {
		return ErrWorkshopNotFound
	}
	delete(f.workshops, id)
	return nil
}

func TestCreateWorkshopRequiresTitleAndDate(t *testing.T) {
	t.Parallel()

	svc := NewWorkshopService(newFakeWorkshopRepo())

	_, err := svc.Create(context.Background(), &CreateWorkshopRequest{Date: "2026-09-01"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &CreateWorkshopRequest{Title: "Robotics 101"})
	assert.Error(t, err)

	w, err := svc.Create(context.Background(), &CreateWorkshopRequest{Title: "Robotics 101", Date: "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, w.Status)
}

func TestSetWorkshopStatus(t *testing.T) {
	t.Parallel()

	svc := NewWorkshopService(newFakeWorkshopRepo())
	w, err := svc.Create(context.Background(), &CreateWorkshopRequest{Title: "Robotics 101", Date: "2026-09-01"})
	require.NoError(t, err)

	updated, err := svc.SetStatus(context.Background(), w.ID, StatusOngoing)
	require.NoError(t, err)
	assert.Equal(t, StatusOngoing, updated.Status)

	_, err = svc.SetStatus(context.Background(), w.ID, Status("archived"))
	assert.Error(t, err)
}

func TestWorkshopNotFoundPassthrough(t *testing.T) {
	t.Parallel()

	svc := NewWorkshopService(newFakeWorkshopRepo())
	missing := uuid.New()

	_, err := svc.GetByID(context.Background(), missing)
	assert.ErrorIs(t, err, ErrWorkshopNotFound)

	_, err = svc.Update(context.Background(), missing, &UpdateWorkshopRequest{})
	assert.ErrorIs(t, err, ErrWorkshopNotFound)

	err = svc.Delete(context.Background(), missing)
	assert.ErrorIs(t, err, ErrWorkshopNotFound)
}
