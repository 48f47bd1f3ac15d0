package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taskflowhq/projectd/internal/config"
	"github.com/taskflowhq/projectd/internal/db"
	"github.com/taskflowhq/projectd/internal/identity"
	"github.com/taskflowhq/projectd/internal/nats"
	"github.com/taskflowhq/projectd/internal/server"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logging
	setupLogging(cfg)

	// Connect to Postgres
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database")

	// Apply schema migrations
	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("schema up to date")

	// NATS lifecycle events (optional)
	var embedded *nats.EmbeddedServer
	var nc *nats.Client
	natsURL := cfg.NatsURL
	if cfg.NatsEmbedded {
		embedded, err = nats.StartEmbedded(nats.EmbeddedConfig{StoreDir: cfg.NatsStoreDir})
		if err != nil {
			slog.Error("failed to start embedded NATS", "error", err)
			os.Exit(1)
		}
		defer embedded.Shutdown()
		natsURL = embedded.ClientURL()
		slog.Info("embedded NATS started", "url", natsURL)
	}
	if natsURL != "" {
		nc, err = nats.Connect(natsURL)
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer nc.Close()

		if err := nc.EnsureStream(ctx); err != nil {
			slog.Error("failed to setup JetStream stream", "error", err)
			os.Exit(1)
		}
		slog.Info("connected to NATS")
	} else {
		slog.Info("NATS_URL not set, lifecycle events disabled")
	}

	resolver := identity.NewClient(cfg.UserServiceURL, slog.Default())

	// Create and start HTTP server
	srv := server.New(cfg, pool, nc, resolver, slog.Default())

	go func() {
		slog.Info("starting server", "port", cfg.Port, "auth_mode", string(cfg.AuthMode))
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

func setupLogging(cfg *config.Config) {
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, lj)
	}

	opts := &slog.HandlerOptions{}
	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	slog.SetDefault(slog.New(handler))
}
