package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/curaious/workshophub/internal/services/user"
	workshop2 "github.com/curaious/workshophub/internal/services/workshop"
)

func TestRequireRoleExactMembership(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		role       user.Role
		allowed    []user.Role
		wantStatus int
		wantUser   bool
	}{
		{
			name:       "role in set",
			role:       user.RoleOrganizer,
			allowed:    []user.Role{user.RoleOrganizer, user.RoleAdmin},
			wantStatus: fasthttp.StatusOK,
			wantUser:   true,
		},
		{
			name:       "role not in set",
			role:       user.RoleUser,
			allowed:    []user.Role{user.RoleOrganizer, user.RoleAdmin},
			wantStatus: fasthttp.StatusForbidden,
		},
		{
			name: "admin gets no implicit organizer access",
			role: user.RoleAdmin,
			// Membership is exact: a set naming only organizer excludes
			// admin, there is no hierarchy.
			allowed:    []user.Role{user.RoleOrganizer},
			wantStatus: fasthttp.StatusForbidden,
		},
		{
			name:       "single-role admin set",
			role:       user.RoleAdmin,
			allowed:    []user.Role{user.RoleAdmin},
			wantStatus: fasthttp.StatusOK,
			wantUser:   true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := &fasthttp.RequestCtx{}
			ctx.SetUserValue("currentUser", &user.User{ID: "user-1", Role: tc.role})

			u := requireRole(ctx, context.Background(), tc.allowed...)

			if tc.wantUser {
				assert.NotNil(t, u)
			} else {
				assert.Nil(t, u)
				assert.Equal(t, tc.wantStatus, ctx.Response.StatusCode())
			}
		})
	}
}

func TestRequireRoleWithoutUser(t *testing.T) {
	t.Parallel()

	ctx := &fasthttp.RequestCtx{}

	u := requireRole(ctx, context.Background(), user.RoleUser)
	assert.Nil(t, u)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestUpcomingWorkshops(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	past := &workshop2.Workshop{Date: "2026-07-01"}
	soon := &workshop2.Workshop{Date: "2026-08-15"}
	later := &workshop2.Workshop{Date: "2026-09-01"}
	junk := &workshop2.Workshop{Date: "not-a-date"}

	upcoming := upcomingWorkshops([]*workshop2.Workshop{past, soon, later, junk}, now)

	assert.Equal(t, []*workshop2.Workshop{soon, later}, upcoming)
}
