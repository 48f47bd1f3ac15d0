// Package identity talks to the user directory service. The directory owns
// all user data; this service only ever needs an id for an email or auth
// subject.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/domain"
)

// User is the directory's view of a user. Only the id is load-bearing here.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name,omitempty"`
}

// Resolver maps external identifiers to canonical users.
type Resolver interface {
	ResolveByEmail(ctx context.Context, email, credential string) (*User, error)
	ResolveBySubject(ctx context.Context, subject, credential string) (*User, error)
}

// Client is the HTTP Resolver implementation.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client for the directory at baseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// ResolveByEmail looks up a user by email address. The caller's credential is
// forwarded unchanged; this service holds no directory credential of its own.
// Every failure mode collapses to domain.ErrUserLookup.
func (c *Client) ResolveByEmail(ctx context.Context, email, credential string) (*User, error) {
	u := c.baseURL + "/api/users/by-email?email=" + url.QueryEscape(email)
	return c.resolve(ctx, u, credential)
}

// ResolveBySubject looks up a user by their auth-provider subject id.
func (c *Client) ResolveBySubject(ctx context.Context, subject, credential string) (*User, error) {
	u := c.baseURL + "/api/users/by-subject/" + url.PathEscape(subject)
	return c.resolve(ctx, u, credential)
}

func (c *Client) resolve(ctx context.Context, rawURL, credential string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUserLookup, err)
	}
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("user directory unreachable", "error", err)
		return nil, fmt.Errorf("%w: directory unreachable", domain.ErrUserLookup)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: directory status %d", domain.ErrUserLookup, resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUserLookup, err)
	}
	if user.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: directory returned no id", domain.ErrUserLookup)
	}
	return &user, nil
}
