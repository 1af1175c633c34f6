package controllers

import (
	"context"
	"errors"
	"fmt"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/curaious/workshophub/internal/api/response"
	"github.com/curaious/workshophub/internal/perrors"
	"github.com/curaious/workshophub/internal/services/user"
)

// requestContext returns a baseline context for handlers. fasthttp does not provide
// a standard context, so we start from the extracted trace context when present.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	if traceCtx, ok := ctx.UserValue("traceCtx").(context.Context); ok {
		return traceCtx
	}
	return context.Background()
}

func parseBody(ctx *fasthttp.RequestCtx, target any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return errors.New("request body is empty")
	}

	return json.Unmarshal(body, target)
}

func writeError(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, err error) {
	response.NewResponse[any](stdCtx, message, nil).WithError(err).Write(ctx)
}

func writeOK(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, data any) {
	response.NewResponse(stdCtx, message, data).Write(ctx)
}

func pathParam(ctx *fasthttp.RequestCtx, key string) (string, error) {
	val := ctx.UserValue(key)
	if val == nil {
		return "", fmt.Errorf("%s is required", key)
	}

	return fmt.Sprint(val), nil
}

func pathParamUUID(ctx *fasthttp.RequestCtx, key string) (uuid.UUID, error) {
	val, err := pathParam(ctx, key)
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(val)
}

// currentUser returns the authenticated user the gate stored on the request,
// or nil on public routes.
func currentUser(ctx *fasthttp.RequestCtx) *user.User {
	u, _ := ctx.UserValue("currentUser").(*user.User)
	return u
}

// requireRole enforces exact role membership: the authenticated user's role
// must be one of the permitted roles, with no hierarchy between them. On
// failure it writes the response and returns nil.
func requireRole(ctx *fasthttp.RequestCtx, stdCtx context.Context, roles ...user.Role) *user.User {
	u := currentUser(ctx)
	if u == nil {
		writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", errors.New("no authenticated user")))
		return nil
	}

	for _, role := range roles {
		if u.Role == role {
			return u
		}
	}

	writeError(ctx, stdCtx, "Insufficient permissions", perrors.NewErrForbidden("Insufficient permissions", fmt.Errorf("role %q is not permitted", u.Role)))
	return nil
}
