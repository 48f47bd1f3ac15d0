package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project is a top-level unit of work with its own workflow and member roster.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ProjectKey  string    `json:"project_key"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NormalizeKey upper-cases a project key. Keys are stored and compared
// upper-cased, which is what makes the uniqueness constraint effectively
// case-insensitive.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
