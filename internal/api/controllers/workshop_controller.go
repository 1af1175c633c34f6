package controllers

import (
	"errors"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/curaious/workshophub/internal/perrors"
	"github.com/curaious/workshophub/internal/services"
	"github.com/curaious/workshophub/internal/services/user"
	workshop2 "github.com/curaious/workshophub/internal/services/workshop"
)

type SetWorkshopStatusRequest struct {
	Status workshop2.Status `json:"status"`
}

func RegisterWorkshopRoutes(r *router.Router, svc *services.Services) {
	// List workshops (public catalog)
	r.GET("/api/workshops", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		workshops, err := svc.Workshop.List(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list workshops", perrors.NewErrInternalServerError("Failed to list workshops", err))
			return
		}

		writeOK(ctx, stdCtx, "Workshops retrieved successfully", workshops)
	})

	// Get one workshop
	r.GET("/api/workshops/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		w, err := svc.Workshop.GetByID(stdCtx, id)
		if err != nil {
			switch {
			case errors.Is(err, workshop2.ErrWorkshopNotFound):
				writeError(ctx, stdCtx, "Workshop not found", perrors.NewErrNotFound("Workshop not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to get workshop", perrors.NewErrInternalServerError("Failed to get workshop", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Workshop retrieved successfully", w)
	})

	// Create workshop
	r.POST("/api/workshops", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleOrganizer, user.RoleAdmin) == nil {
			return
		}

		var body workshop2.CreateWorkshopRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Title == "" || body.Date == "" {
			writeError(ctx, stdCtx, "Title and date are required", perrors.NewErrInvalidRequest("Title and date are required", errors.New("missing required fields")))
			return
		}

		created, err := svc.Workshop.Create(stdCtx, &body)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to create workshop", perrors.NewErrInternalServerError("Failed to create workshop", err))
			return
		}

		writeOK(ctx, stdCtx, "Workshop created successfully", created)
	})

	// Update workshop
	r.PUT("/api/workshops/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleOrganizer, user.RoleAdmin) == nil {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body workshop2.UpdateWorkshopRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Title != nil && *body.Title == "" {
			writeError(ctx, stdCtx, "Title cannot be empty", perrors.NewErrInvalidRequest("Title cannot be empty", errors.New("title cannot be empty")))
			return
		}

		updated, err := svc.Workshop.Update(stdCtx, id, &body)
		if err != nil {
			switch {
			case errors.Is(err, workshop2.ErrWorkshopNotFound):
				writeError(ctx, stdCtx, "Workshop not found", perrors.NewErrNotFound("Workshop not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to update workshop", perrors.NewErrInternalServerError("Failed to update workshop", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Workshop updated successfully", updated)
	})

	// Update workshop status
	r.PUT("/api/workshops/{id}/status", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleOrganizer, user.RoleAdmin) == nil {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body SetWorkshopStatusRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if !workshop2.ValidStatus(body.Status) {
			writeError(ctx, stdCtx, "Invalid status", perrors.NewErrInvalidRequest("Invalid status", errors.New("status must be pending, ongoing or completed")))
			return
		}

		updated, err := svc.Workshop.SetStatus(stdCtx, id, body.Status)
		if err != nil {
			switch {
			case errors.Is(err, workshop2.ErrWorkshopNotFound):
				writeError(ctx, stdCtx, "Workshop not found", perrors.NewErrNotFound("Workshop not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to update workshop status", perrors.NewErrInternalServerError("Failed to update workshop status", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Workshop status updated successfully", updated)
	})

	// Delete workshop
	r.DELETE("/api/workshops/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleOrganizer, user.RoleAdmin) == nil {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		if err := svc.Workshop.Delete(stdCtx, id); err != nil {
			switch {
			case errors.Is(err, workshop2.ErrWorkshopNotFound):
				writeError(ctx, stdCtx, "Workshop not found", perrors.NewErrNotFound("Workshop not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to delete workshop", perrors.NewErrInternalServerError("Failed to delete workshop", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Workshop deleted successfully", nil)
	})
}
