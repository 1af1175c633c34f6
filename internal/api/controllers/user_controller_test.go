package controllers

import (
	"context"
	"testing"

	"github.com/fasthttp/router"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/curaious/workshophub/internal/services"
	"github.com/curaious/workshophub/internal/services/user"
)

// recordingUserRepo tracks which IDs reach the store's Delete.
type recordingUserRepo struct {
	users   map[string]*user.User
	deleted []string
}

func (f *recordingUserRepo) Create(_ context.Context, name, email, phone, passwordHash string) (*user.User, error) {
	return nil, user.ErrUserAlreadyExists
}

func (f *recordingUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *recordingUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (f *recordingUserRepo) List(_ context.Context) ([]*user.User, error) {
	return nil, nil
}

func (f *recordingUserRepo) UpdateProfile(_ context.Context, id string, params *user.UpdateUserParams) (*user.User, error) {
	return f.GetByID(context.Background(), id)
}

func (f *recordingUserRepo) SetRole(_ context.Context, id string, role user.Role) (*user.User, error) {
	return f.GetByID(context.Background(), id)
}

func (f *recordingUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	f.deleted = append(f.deleted, id)
	delete(f.users, id)
	return nil
}

func deleteUserRequest(svc *services.Services, caller *user.User, targetID string) *fasthttp.RequestCtx {
	r := router.New()
	RegisterUserRoutes(r, svc)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodDelete)
	ctx.Request.SetRequestURI("/api/users/" + targetID)
	ctx.SetUserValue("currentUser", caller)

	r.Handler(ctx)
	return ctx
}

func TestDeleteUserRejectsSelfDeletion(t *testing.T) {
	t.Parallel()

	admin := &user.User{ID: "admin-1", Role: user.RoleAdmin}
	repo := &recordingUserRepo{users: map[string]*user.User{"admin-1": admin}}
	svc := &services.Services{User: user.NewUserService(repo)}

	ctx := deleteUserRequest(svc, admin, admin.ID)

	// Rejected before the store is ever asked.
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Empty(t, repo.deleted)
}

func TestDeleteUserOtherAccount(t *testing.T) {
	t.Parallel()

	admin := &user.User{ID: "admin-1", Role: user.RoleAdmin}
	other := &user.User{ID: "user-2", Role: user.RoleUser}
	repo := &recordingUserRepo{users: map[string]*user.User{"admin-1": admin, "user-2": other}}
	svc := &services.Services{User: user.NewUserService(repo)}

	ctx := deleteUserRequest(svc, admin, other.ID)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, []string{"user-2"}, repo.deleted)
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	t.Parallel()

	organizer := &user.User{ID: "org-1", Role: user.RoleOrganizer}
	target := &user.User{ID: "user-2", Role: user.RoleUser}
	repo := &recordingUserRepo{users: map[string]*user.User{"org-1": organizer, "user-2": target}}
	svc := &services.Services{User: user.NewUserService(repo)}

	ctx := deleteUserRequest(svc, organizer, target.ID)

	assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
	assert.Empty(t, repo.deleted)
}
