package db

import (
	"time"

	"github.com/google/uuid"
)

// Project is a row in projects.
type Project struct {
	ID          uuid.UUID
	Name        string
	ProjectKey  string
	Description *string
	Type        *string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
}

// WorkflowStatus is a row in workflow_statuses.
type WorkflowStatus struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Code        string
	StatusName  string
	Description *string
	OrderIndex  int32
	IsFinal     bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectMember is a row in project_members.
type ProjectMember struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string
	Status    string
	JoinedAt  time.Time
	UpdatedAt time.Time
}
