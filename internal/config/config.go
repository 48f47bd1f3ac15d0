package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// AuthMode determines how the caller's identity reaches this service.
type AuthMode string

const (
	// AuthModeGateway trusts the X-User-Id / X-User-Email headers injected
	// by the API gateway after it has validated the caller's token.
	AuthModeGateway AuthMode = "gateway"
	// AuthModeClerk validates a Clerk JWT directly and resolves the subject
	// through the user directory. For deployments without a gateway.
	AuthModeClerk AuthMode = "clerk"
)

type Config struct {
	// Server
	Port            string        `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Database
	DatabaseURL string `env:"DATABASE_URL,required"`

	// User directory (identity resolver)
	UserServiceURL string `env:"USER_SERVICE_URL" envDefault:"http://localhost:8081"`

	// NATS lifecycle events. Empty NATS_URL disables eventing.
	NatsURL      string `env:"NATS_URL"`
	NatsEmbedded bool   `env:"NATS_EMBEDDED" envDefault:"false"`
	NatsStoreDir string `env:"NATS_STORE_DIR" envDefault:"./data/nats"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile   string `env:"LOG_FILE"` // rotating file output when set

	// Authentication
	AuthMode       AuthMode `env:"AUTH_MODE" envDefault:"gateway"`
	ClerkSecretKey string   `env:"CLERK_SECRET_KEY"`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
