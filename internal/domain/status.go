package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowStatus is one stage in a project's task lifecycle.
type WorkflowStatus struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Code        string    `json:"code"`
	StatusName  string    `json:"status_name"`
	Description string    `json:"description,omitempty"`
	OrderIndex  int32     `json:"order_index"`
	IsFinal     bool      `json:"is_final"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatusSeed describes one of the workflow statuses every new project
// starts with.
type StatusSeed struct {
	Code       string
	StatusName string
	OrderIndex int32
	IsFinal    bool
}

// DefaultWorkflow returns the statuses bootstrapped for every new project,
// in display order. Only DONE is terminal.
func DefaultWorkflow() []StatusSeed {
	return []StatusSeed{
		{Code: "TODO", StatusName: "To Do", OrderIndex: 1, IsFinal: false},
		{Code: "IN_PROGRESS", StatusName: "In Progress", OrderIndex: 2, IsFinal: false},
		{Code: "DONE", StatusName: "Done", OrderIndex: 3, IsFinal: true},
	}
}
