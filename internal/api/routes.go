package api

import (
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/propagation"

	"github.com/curaious/workshophub/internal/api/authenticator"
	"github.com/curaious/workshophub/internal/api/controllers"
	"github.com/curaious/workshophub/internal/api/response"
	"github.com/curaious/workshophub/internal/config"
	"github.com/curaious/workshophub/internal/perrors"
	"github.com/curaious/workshophub/internal/ratelimit"
)

var tracePropagator = propagation.TraceContext{}

// loginRateLimit is applied per client IP to the credential endpoints.
var loginRateLimit = ratelimit.Limit{Requests: 10, Window: time.Minute}

func (s *Server) initNewRoutes() fasthttp.RequestHandler {
	r := router.New()

	r.GET("/api/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		_, _ = ctx.Write([]byte("OK"))
	})

	conf := config.ReadConfig()
	auth, err := authenticator.New(conf, s.services.User)
	if err != nil {
		log.Fatal(err)
	}

	controllers.RegisterAuthRoutes(r, s.services, auth, conf)
	controllers.RegisterUserRoutes(r, s.services)
	controllers.RegisterWorkshopRoutes(r, s.services)
	controllers.RegisterRegistrationRoutes(r, s.services)
	controllers.RegisterDashboardRoutes(r, s.services)

	return s.withMiddlewares(r.Handler, auth)
}

func (s *Server) withMiddlewares(next fasthttp.RequestHandler, auth *authenticator.Authenticator) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		applyCORS(ctx)
		if string(ctx.Method()) == fasthttp.MethodOptions {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}

		start := time.Now()
		uri := ctx.URI()
		requestURI := string(uri.FullURI())
		slog.Info("Started processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI))

		h := http.Header{}
		ctx.Request.Header.VisitAll(func(k, v []byte) {
			h[string(k)] = []string{string(v)}
		})
		traceCtx := tracePropagator.Extract(ctx, propagation.HeaderCarrier(h))
		ctx.SetUserValue("traceCtx", traceCtx)

		// Throttle credential endpoints per client IP
		if isCredentialRoute(ctx) {
			allowed, err := s.loginLimiter.Allow(traceCtx, ctx.RemoteIP().String(), loginRateLimit)
			if err != nil {
				// Fail open: a broken limiter store must not lock everyone out.
				slog.Warn("Rate limiter check failed", slog.Any("error", err))
			} else if !allowed {
				response.NewResponse[any](traceCtx, "Too many attempts", nil).
					WithError(perrors.NewErrTooManyRequests("Too many attempts", errors.New("login rate limit exceeded"))).
					Write(ctx)
				return
			}
		}

		// Auth check
		if !isPublicRoute(ctx) {
			accessToken := strings.TrimPrefix(string(ctx.Request.Header.Peek("Authorization")), "Bearer ")

			if accessToken == "" {
				response.NewResponse[any](traceCtx, "Unauthorized", nil).
					WithError(perrors.NewErrUnauthorized("Unauthorized", errors.New("missing bearer token"))).
					Write(ctx)
				return
			}

			u, err := auth.Authenticate(traceCtx, accessToken)
			if err != nil {
				switch {
				case errors.Is(err, authenticator.ErrTokenExpired),
					errors.Is(err, authenticator.ErrTokenInvalidSignature),
					errors.Is(err, authenticator.ErrTokenMalformed),
					errors.Is(err, authenticator.ErrUnknownSubject):
					response.NewResponse[any](traceCtx, "Unauthorized", nil).
						WithError(perrors.NewErrUnauthorized("Unauthorized", err)).
						Write(ctx)
				default:
					// Store failure: never let the request through as anonymous.
					response.NewResponse[any](traceCtx, "Failed to authenticate", nil).
						WithError(perrors.NewErrInternalServerError("Failed to authenticate", err)).
						Write(ctx)
				}
				return
			}

			// Store the resolved user in context for downstream handlers
			ctx.SetUserValue("currentUser", u)
		}

		next(ctx)

		slog.Info("Finished processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI), slog.Duration("duration", time.Since(start)))
	}
}

func applyCORS(ctx *fasthttp.RequestCtx) {
	headers := &ctx.Response.Header
	headers.Set("Access-Control-Allow-Origin", string(ctx.Request.Header.Peek("Origin")))
	headers.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS,PATCH")
	headers.Set("Access-Control-Allow-Headers", os.Getenv("ALLOWED_HEADERS"))
	headers.Set("Access-Control-Allow-Credentials", "true")
}

func isCredentialRoute(ctx *fasthttp.RequestCtx) bool {
	if string(ctx.Method()) != fasthttp.MethodPost {
		return false
	}

	switch string(ctx.Path()) {
	case "/api/auth/login", "/api/auth/register", "/api/auth/admin-login":
		return true
	}
	return false
}

func isPublicRoute(ctx *fasthttp.RequestCtx) bool {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/api/health":
		return true
	case path == "/api/auth/register", path == "/api/auth/login", path == "/api/auth/admin-login":
		return true
	// The workshop catalog and the interest form are open to visitors.
	case path == "/api/workshops/register" && method == fasthttp.MethodPost:
		return true
	case strings.HasPrefix(path, "/api/workshops") && method == fasthttp.MethodGet:
		return true
	default:
		return false
	}
}
