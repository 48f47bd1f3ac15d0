package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taskflowhq/projectd/internal/config"
	"github.com/taskflowhq/projectd/internal/db"
	"github.com/taskflowhq/projectd/internal/identity"
	projectnats "github.com/taskflowhq/projectd/internal/nats"
	"github.com/taskflowhq/projectd/internal/server"
)

// TestEnv holds all test dependencies
type TestEnv struct {
	DB        *pgxpool.Pool
	NATS      *projectnats.Client
	Server    *server.Server
	ServerURL string
	PostgresC testcontainers.Container
	Directory *directoryStub
	embedded  *projectnats.EmbeddedServer
	directory *httptest.Server
	cancel    context.CancelFunc
}

// directoryStub fakes the user directory service. Users registered here can
// be resolved by email.
type directoryStub struct {
	users map[string]identity.User // keyed by email
}

func (d *directoryStub) Register(email string) uuid.UUID {
	id := uuid.New()
	d.users[email] = identity.User{ID: id, Email: email}
	return id
}

func (d *directoryStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/by-email", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		user, ok := d.users[email]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	})
	mux.HandleFunc("/api/users/by-subject/", func(w http.ResponseWriter, r *http.Request) {
		subject := strings.TrimPrefix(r.URL.Path, "/api/users/by-subject/")
		for _, user := range d.users {
			if user.Email == subject {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(user)
				return
			}
		}
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})
	return mux
}

// SetupTestEnv creates a complete test environment with a Postgres container,
// an embedded NATS server, and a stubbed user directory.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)

	env := &TestEnv{
		cancel: cancel,
	}

	// Start Postgres container
	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("projectd_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}
	env.PostgresC = postgresC

	postgresURL, err := postgresC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	// Connect to Postgres and apply migrations
	pool, err := pgxpool.New(ctx, postgresURL)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	env.DB = pool

	if err := db.Migrate(postgresURL); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Embedded NATS with JetStream
	embedded, err := projectnats.StartEmbedded(projectnats.EmbeddedConfig{
		StoreDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("failed to start embedded nats: %v", err)
	}
	env.embedded = embedded

	nc, err := projectnats.Connect(embedded.ClientURL())
	if err != nil {
		t.Fatalf("failed to connect to nats: %v", err)
	}
	env.NATS = nc

	if err := nc.EnsureStream(ctx); err != nil {
		t.Fatalf("failed to ensure stream: %v", err)
	}

	// Stub user directory
	env.Directory = &directoryStub{users: make(map[string]identity.User)}
	env.directory = httptest.NewServer(env.Directory.handler())

	cfg := &config.Config{
		Port:            "0",
		ShutdownTimeout: 5 * time.Second,
		DatabaseURL:     postgresURL,
		UserServiceURL:  env.directory.URL,
		NatsURL:         embedded.ClientURL(),
		LogLevel:        "debug",
		LogFormat:       "text",
		AuthMode:        config.AuthModeGateway,
		CORSOrigins:     []string{"http://localhost:3000"},
	}

	resolver := identity.NewClient(env.directory.URL, nil)
	srv := server.New(cfg, pool, nc, resolver, nil)

	// Start server on random port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}

	env.ServerURL = fmt.Sprintf("http://%s", listener.Addr().String())

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	env.Server = srv

	if err := waitForServer(env.ServerURL); err != nil {
		t.Fatalf("server not ready: %v", err)
	}

	return env
}

// Cleanup tears down the test environment
func (e *TestEnv) Cleanup(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if e.Server != nil {
		e.Server.Shutdown(ctx)
	}
	if e.directory != nil {
		e.directory.Close()
	}
	if e.NATS != nil {
		e.NATS.Close()
	}
	if e.embedded != nil {
		e.embedded.Shutdown()
	}
	if e.DB != nil {
		e.DB.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(ctx)
	}
	e.cancel()
}

func waitForServer(url string) error {
	client := &http.Client{Timeout: 1 * time.Second}
	deadline := time.Now().Add(15 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not become ready", url)
}
