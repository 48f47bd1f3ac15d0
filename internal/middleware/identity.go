package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/identity"
)

type contextKey string

const identityCtxKey contextKey = "identity"

// Identity is the authenticated caller, established at the perimeter before
// any business logic runs.
type Identity struct {
	UserID uuid.UUID
	Email  string
	// Credential is the caller's original Authorization header, forwarded
	// verbatim to the user directory. This service mints no credential of
	// its own.
	Credential string
}

// GetIdentity retrieves the caller identity from the request context.
func GetIdentity(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityCtxKey).(*Identity)
	return id
}

// GatewayAuth trusts the identity headers injected by the API gateway.
// Requests that did not come through the gateway carry no X-User-Id and are
// rejected before reaching any handler.
func GatewayAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get("X-User-Id")
		if rawID == "" {
			writeAuthError(w, http.StatusUnauthorized, "authenticated identity required")
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "invalid user identity")
			return
		}

		id := &Identity{
			UserID:     userID,
			Email:      r.Header.Get("X-User-Email"),
			Credential: r.Header.Get("Authorization"),
		}
		ctx := context.WithValue(r.Context(), identityCtxKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClerkAuth validates a Clerk JWT and resolves the subject to a canonical
// user through the user directory. Requires clerk.SetKey() at startup.
func ClerkAuth(resolver identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return clerkhttp.RequireHeaderAuthorization()(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, ok := clerk.SessionClaimsFromContext(r.Context())
				if !ok {
					writeAuthError(w, http.StatusUnauthorized, "invalid or missing session")
					return
				}

				credential := r.Header.Get("Authorization")
				user, err := resolver.ResolveBySubject(r.Context(), claims.Subject, credential)
				if err != nil {
					writeAuthError(w, http.StatusUnauthorized, "unknown user")
					return
				}

				id := &Identity{
					UserID:     user.ID,
					Email:      user.Email,
					Credential: credential,
				}
				ctx := context.WithValue(r.Context(), identityCtxKey, id)
				next.ServeHTTP(w, r.WithContext(ctx))
			}),
		)
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
