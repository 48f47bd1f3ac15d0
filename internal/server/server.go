// Package server wires the HTTP surface: router, middleware, handlers, and
// graceful shutdown.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflowhq/projectd/internal/config"
	"github.com/taskflowhq/projectd/internal/identity"
	"github.com/taskflowhq/projectd/internal/middleware"
	"github.com/taskflowhq/projectd/internal/nats"
)

// Server is the HTTP server.
type Server struct {
	cfg         *config.Config
	db          *pgxpool.Pool
	nats        *nats.Client
	resolver    identity.Resolver
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
	server      *http.Server
}

// New creates a new Server. nc may be nil when eventing is disabled.
func New(cfg *config.Config, pool *pgxpool.Pool, nc *nats.Client, resolver identity.Resolver, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.AuthMode == config.AuthModeClerk {
		if cfg.ClerkSecretKey != "" {
			clerk.SetKey(cfg.ClerkSecretKey)
			slog.Info("Clerk authentication enabled")
		} else {
			slog.Warn("AUTH_MODE=clerk but CLERK_SECRET_KEY not set - authenticated routes will reject all requests")
		}
	}

	s := &Server{
		cfg:         cfg,
		db:          pool,
		nats:        nc,
		resolver:    resolver,
		rateLimiter: middleware.NewRateLimiter(middleware.DefaultRateLimitConfig()),
		logger:      logger,
	}

	s.server = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.routes(),
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Serve starts the HTTP server on the given listener.
func (s *Server) Serve(l net.Listener) error {
	return s.server.Serve(l)
}

// Shutdown gracefully shuts down the server, draining inflight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	return s.server.Shutdown(ctx)
}
