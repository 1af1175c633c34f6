package controllers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/curaious/workshophub/internal/perrors"
	"github.com/curaious/workshophub/internal/services"
	registration2 "github.com/curaious/workshophub/internal/services/registration"
	"github.com/curaious/workshophub/internal/services/user"
)

type SetRegistrationStatusRequest struct {
	Status registration2.Status `json:"status"`
}

func RegisterRegistrationRoutes(r *router.Router, svc *services.Services) {
	// Anonymous interest form. No account needed; the registration carries
	// no user reference.
	r.POST("/api/workshops/register", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var body registration2.CreateRegistrationRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Name == "" || body.Email == "" {
			writeError(ctx, stdCtx, "Name and email are required", perrors.NewErrInvalidRequest("Name and email are required", errors.New("missing required fields")))
			return
		}

		created, err := svc.Registration.Create(stdCtx, &body, nil)
		if err != nil {
			writeRegistrationCreateError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Registration submitted successfully", created)
	})

	// Register the authenticated user for a workshop
	r.POST("/api/registrations", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		u := requireRole(ctx, stdCtx, user.RoleUser, user.RoleOrganizer, user.RoleAdmin)
		if u == nil {
			return
		}

		var body registration2.CreateRegistrationRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Name == "" || body.Email == "" {
			writeError(ctx, stdCtx, "Name and email are required", perrors.NewErrInvalidRequest("Name and email are required", errors.New("missing required fields")))
			return
		}

		created, err := svc.Registration.Create(stdCtx, &body, &u.ID)
		if err != nil {
			writeRegistrationCreateError(ctx, stdCtx, err)
			return
		}

		writeOK(ctx, stdCtx, "Registration submitted successfully", created)
	})

	// List the authenticated user's own registrations
	r.GET("/api/registrations/user", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		u := requireRole(ctx, stdCtx, user.RoleUser, user.RoleOrganizer, user.RoleAdmin)
		if u == nil {
			return
		}

		registrations, err := svc.Registration.ListByUser(stdCtx, u.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list registrations", perrors.NewErrInternalServerError("Failed to list registrations", err))
			return
		}

		writeOK(ctx, stdCtx, "Registrations retrieved successfully", registrations)
	})

	// List registrations, optionally filtered by workshop and status
	r.GET("/api/registrations", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleOrganizer, user.RoleAdmin) == nil {
			return
		}

		filter := &registration2.ListFilter{}

		if raw := ctx.QueryArgs().Peek("workshop_id"); len(raw) > 0 {
			workshopID, err := uuid.ParseBytes(raw)
			if err != nil {
				writeError(ctx, stdCtx, "Invalid workshop_id format", perrors.NewErrInvalidRequest("Invalid workshop_id format", err))
				return
			}
			filter.WorkshopID = &workshopID
		}

		if raw := ctx.QueryArgs().Peek("status"); len(raw) > 0 {
			status := registration2.Status(raw)
			if !registration2.ValidStatus(status) {
				writeError(ctx, stdCtx, "Invalid status", perrors.NewErrInvalidRequest("Invalid status", errors.New("status must be pending, approved or rejected")))
				return
			}
			filter.Status = &status
		}

		registrations, err := svc.Registration.List(stdCtx, filter)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list registrations", perrors.NewErrInternalServerError("Failed to list registrations", err))
			return
		}

		writeOK(ctx, stdCtx, "Registrations retrieved successfully", registrations)
	})

	// Get one registration. Plain users may only read their own; organizers
	// and admins may read any.
	r.GET("/api/registrations/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		u := requireRole(ctx, stdCtx, user.RoleUser, user.RoleOrganizer, user.RoleAdmin)
		if u == nil {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		reg, err := svc.Registration.GetByID(stdCtx, id)
		if err != nil {
			switch {
			case errors.Is(err, registration2.ErrRegistrationNotFound):
				writeError(ctx, stdCtx, "Registration not found", perrors.NewErrNotFound("Registration not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to get registration", perrors.NewErrInternalServerError("Failed to get registration", err))
			}
			return
		}

		if u.Role == user.RoleUser && (reg.UserID == nil || *reg.UserID != u.ID) {
			writeError(ctx, stdCtx, "Insufficient permissions", perrors.NewErrForbidden("Insufficient permissions", errors.New("registration belongs to another user")))
			return
		}

		writeOK(ctx, stdCtx, "Registration retrieved successfully", reg)
	})

	// Update registration status
	r.PUT("/api/registrations/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleOrganizer, user.RoleAdmin) == nil {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body SetRegistrationStatusRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if !registration2.ValidStatus(body.Status) {
			writeError(ctx, stdCtx, "Invalid status", perrors.NewErrInvalidRequest("Invalid status", errors.New("status must be pending, approved or rejected")))
			return
		}

		updated, err := svc.Registration.SetStatus(stdCtx, id, body.Status)
		if err != nil {
			switch {
			case errors.Is(err, registration2.ErrRegistrationNotFound):
				writeError(ctx, stdCtx, "Registration not found", perrors.NewErrNotFound("Registration not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to update registration status", perrors.NewErrInternalServerError("Failed to update registration status", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Registration status updated successfully", updated)
	})

	// Delete a registration
	r.DELETE("/api/registrations/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleAdmin) == nil {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		if err := svc.Registration.Delete(stdCtx, id); err != nil {
			switch {
			case errors.Is(err, registration2.ErrRegistrationNotFound):
				writeError(ctx, stdCtx, "Registration not found", perrors.NewErrNotFound("Registration not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to delete registration", perrors.NewErrInternalServerError("Failed to delete registration", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Registration deleted successfully", nil)
	})
}

func writeRegistrationCreateError(ctx *fasthttp.RequestCtx, stdCtx context.Context, err error) {
	switch {
	case errors.Is(err, registration2.ErrWorkshopNotFound):
		writeError(ctx, stdCtx, "Workshop not found", perrors.NewErrNotFound("Workshop not found", err))
	default:
		writeError(ctx, stdCtx, "Failed to submit registration", perrors.NewErrInternalServerError("Failed to submit registration", err))
	}
}
