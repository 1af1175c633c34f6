package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/curaious/workshophub/internal/ratelimit"
	"github.com/curaious/workshophub/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"

	"github.com/curaious/workshophub/internal/config"
	"github.com/curaious/workshophub/internal/migrations"
)

// Server is the workshop registration HTTP server
type Server struct {
	srv          *fasthttp.Server
	addr         string
	services     *services.Services
	loginLimiter ratelimit.Storage
}

// New creates a new server, running pending migrations first
func New() *Server {
	conf := config.ReadConfig()

	m, err := migrations.NewMigrator()
	if err != nil {
		panic("unable to create migrator")
	}

	err = m.Up(0)
	if err != nil {
		panic("unable to run migrations")
	}

	s := &Server{
		srv:          &fasthttp.Server{},
		addr:         fmt.Sprintf("0.0.0.0:%s", conf.PORT),
		services:     services.NewServices(conf),
		loginLimiter: newLoginLimiter(conf),
	}

	s.srv.Handler = s.initNewRoutes()

	return s
}

// newLoginLimiter picks the rate limiter storage: Redis when configured so
// the limit holds across instances, in-memory otherwise.
func newLoginLimiter(conf *config.Config) ratelimit.Storage {
	if conf.REDIS_ADDR == "" {
		return ratelimit.NewInMemoryStorage()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.REDIS_ADDR,
		Password: conf.REDIS_PASSWORD,
	})

	storage := ratelimit.NewRedisStorage(client, "login_rate_limit:")
	if err := storage.Ping(context.Background()); err != nil {
		slog.Warn("Redis unreachable, falling back to in-memory rate limiting", slog.Any("error", err))
		return ratelimit.NewInMemoryStorage()
	}

	slog.Info("Using Redis-backed login rate limiting", slog.String("addr", conf.REDIS_ADDR))
	return storage
}

// Start the rest server
func (s *Server) Start() {
	slog.Info("Starting REST server...")
	go func() {
		if err := s.srv.ListenAndServe(s.addr); err != nil {
			slog.Error("Server shutdown", slog.Any("error", err))
		}
	}()
	slog.Info("REST server started!")

	// Listen for OS interrupts
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Block till we receive an interrupt
	<-c
	slog.Info("Received interrupt...")

	// Create a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	s.shutdown(ctx)
}

// Shutdown shuts down the rest server
func (s *Server) shutdown(ctx context.Context) {
	slog.Info("Gracefully shutting down REST server...")
	if err := s.srv.Shutdown(); err != nil {
		slog.Error("Failed to shutdown the server", slog.Any("error", err))
	}
	slog.Info("REST server shutdown!")
}
