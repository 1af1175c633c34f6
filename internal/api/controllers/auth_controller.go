package controllers

import (
	"crypto/subtle"
	"errors"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/curaious/workshophub/internal/api/authenticator"
	"github.com/curaious/workshophub/internal/config"
	"github.com/curaious/workshophub/internal/perrors"
	"github.com/curaious/workshophub/internal/services"
	"github.com/curaious/workshophub/internal/services/user"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse pairs a freshly minted token with the account it belongs to.
// The password hash never serializes.
type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func RegisterAuthRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator, conf *config.Config) {
	// Self-service registration. New accounts always start with the default
	// role; there is no way to request another one here.
	r.POST("/api/auth/register", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var body user.CreateUserRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Name == "" || body.Email == "" || body.Password == "" {
			writeError(ctx, stdCtx, "Name, email and password are required", perrors.NewErrInvalidRequest("Name, email and password are required", errors.New("missing required fields")))
			return
		}

		created, err := svc.User.Create(stdCtx, &body)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrUserAlreadyExists):
				writeError(ctx, stdCtx, "Email is already registered", perrors.NewErrConflict("Email is already registered", err))
			default:
				writeError(ctx, stdCtx, "Failed to register", perrors.NewErrInternalServerError("Failed to register", err))
			}
			return
		}

		token, err := auth.GenerateToken(created.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to generate token", perrors.NewErrInternalServerError("Failed to generate token", err))
			return
		}

		writeOK(ctx, stdCtx, "Registered successfully", AuthResponse{Token: token, User: created})
	})

	// Login with email/password
	r.POST("/api/auth/login", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var body LoginRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Email == "" || body.Password == "" {
			writeError(ctx, stdCtx, "Email and password are required", perrors.NewErrInvalidRequest("Email and password are required", errors.New("missing credentials")))
			return
		}

		u, err := svc.User.Authenticate(stdCtx, body.Email, body.Password)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrInvalidCredentials):
				writeError(ctx, stdCtx, "Invalid credentials", perrors.NewErrUnauthorized("Invalid credentials", err))
			default:
				writeError(ctx, stdCtx, "Failed to log in", perrors.NewErrInternalServerError("Failed to log in", err))
			}
			return
		}

		token, err := auth.GenerateToken(u.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to generate token", perrors.NewErrInternalServerError("Failed to generate token", err))
			return
		}

		writeOK(ctx, stdCtx, "Logged in successfully", AuthResponse{Token: token, User: u})
	})

	// Out-of-band admin login against the configured credentials. Provisions
	// the admin account on first use so the token subject resolves.
	r.POST("/api/auth/admin-login", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var body AdminLoginRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if conf.ADMIN_PASSWORD == "" {
			writeError(ctx, stdCtx, "Admin login is disabled", perrors.NewErrUnauthorized("Admin login is disabled", errors.New("no admin password configured")))
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(body.Username), []byte(conf.ADMIN_USERNAME))
		passMatch := subtle.ConstantTimeCompare([]byte(body.Password), []byte(conf.ADMIN_PASSWORD))
		if userMatch&passMatch != 1 {
			writeError(ctx, stdCtx, "Invalid credentials", perrors.NewErrUnauthorized("Invalid credentials", errors.New("admin credentials mismatch")))
			return
		}

		admin, err := svc.User.ProvisionAdmin(stdCtx, conf.ADMIN_USERNAME, conf.ADMIN_EMAIL, conf.ADMIN_PASSWORD)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to provision admin account", perrors.NewErrInternalServerError("Failed to provision admin account", err))
			return
		}

		token, err := auth.GenerateToken(admin.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to generate token", perrors.NewErrInternalServerError("Failed to generate token", err))
			return
		}

		writeOK(ctx, stdCtx, "Logged in successfully", AuthResponse{Token: token, User: admin})
	})

	// Mint a fresh token for the authenticated user
	r.GET("/api/auth/refresh", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		u := requireRole(ctx, stdCtx, user.RoleUser, user.RoleOrganizer, user.RoleAdmin)
		if u == nil {
			return
		}

		token, err := auth.GenerateToken(u.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to generate token", perrors.NewErrInternalServerError("Failed to generate token", err))
			return
		}

		writeOK(ctx, stdCtx, "Token refreshed", AuthResponse{Token: token, User: u})
	})

	// Get current user info
	r.GET("/api/auth/me", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		u := currentUser(ctx)
		if u == nil {
			writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", errors.New("no authenticated user")))
			return
		}

		writeOK(ctx, stdCtx, "User retrieved successfully", u)
	})
}
