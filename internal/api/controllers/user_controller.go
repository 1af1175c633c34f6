package controllers

import (
	"errors"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/curaious/workshophub/internal/perrors"
	"github.com/curaious/workshophub/internal/services"
	"github.com/curaious/workshophub/internal/services/user"
)

type SetRoleRequest struct {
	Role user.Role `json:"role"`
}

func RegisterUserRoutes(r *router.Router, svc *services.Services) {
	// Current user's profile
	r.GET("/api/users/me", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		u := requireRole(ctx, stdCtx, user.RoleUser, user.RoleOrganizer, user.RoleAdmin)
		if u == nil {
			return
		}

		writeOK(ctx, stdCtx, "User retrieved successfully", u)
	})

	// Update own profile. The request type only carries name, phone and
	// password; a role or email change cannot be expressed here.
	r.PUT("/api/users/me", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		u := requireRole(ctx, stdCtx, user.RoleUser, user.RoleOrganizer, user.RoleAdmin)
		if u == nil {
			return
		}

		var body user.UpdateProfileRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Name != nil && *body.Name == "" {
			writeError(ctx, stdCtx, "Name cannot be empty", perrors.NewErrInvalidRequest("Name cannot be empty", errors.New("name cannot be empty")))
			return
		}

		updated, err := svc.User.UpdateProfile(stdCtx, u.ID, &body)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrUserNotFound):
				writeError(ctx, stdCtx, "User not found", perrors.NewErrNotFound("User not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to update profile", perrors.NewErrInternalServerError("Failed to update profile", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Profile updated successfully", updated)
	})

	// List all accounts
	r.GET("/api/users", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleAdmin) == nil {
			return
		}

		users, err := svc.User.List(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list users", perrors.NewErrInternalServerError("Failed to list users", err))
			return
		}

		writeOK(ctx, stdCtx, "Users retrieved successfully", users)
	})

	// Change an account's role
	r.PUT("/api/users/{id}/role", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleAdmin) == nil {
			return
		}

		id, err := pathParam(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body SetRoleRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if !user.ValidRole(body.Role) {
			writeError(ctx, stdCtx, "Invalid role", perrors.NewErrInvalidRequest("Invalid role", errors.New("role must be user, organizer or admin")))
			return
		}

		updated, err := svc.User.SetRole(stdCtx, id, body.Role)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrUserNotFound):
				writeError(ctx, stdCtx, "User not found", perrors.NewErrNotFound("User not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to update role", perrors.NewErrInternalServerError("Failed to update role", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Role updated successfully", updated)
	})

	// Delete an account. Self-deletion is rejected before the store is ever
	// asked, so an admin cannot lock themselves out mid-session.
	r.DELETE("/api/users/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		admin := requireRole(ctx, stdCtx, user.RoleAdmin)
		if admin == nil {
			return
		}

		id, err := pathParam(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		if id == admin.ID {
			writeError(ctx, stdCtx, "Cannot delete your own account", perrors.NewErrInvalidRequest("Cannot delete your own account", errors.New("self-deletion is not allowed")))
			return
		}

		if err := svc.User.Delete(stdCtx, id); err != nil {
			switch {
			case errors.Is(err, user.ErrUserNotFound):
				writeError(ctx, stdCtx, "User not found", perrors.NewErrNotFound("User not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to delete user", perrors.NewErrInternalServerError("Failed to delete user", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "User deleted successfully", nil)
	})
}
