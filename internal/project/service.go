// Package project implements project bootstrap and CRUD: creating a project
// creates its default workflow and the owner membership in the same
// transaction.
package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/db"
	"github.com/taskflowhq/projectd/internal/domain"
)

// Store is the persistence surface the service needs, implemented by *db.Store.
type Store interface {
	BootstrapProject(ctx context.Context, arg db.BootstrapProjectParams) (db.Project, error)
	ListProjects(ctx context.Context) ([]db.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (db.Project, error)
	UpdateProject(ctx context.Context, arg db.UpdateProjectParams) (db.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ListProjectStatuses(ctx context.Context, projectID uuid.UUID) ([]db.WorkflowStatus, error)
}

// Events publishes lifecycle events. May be nil-backed in tests.
type Events interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// Service orchestrates project operations.
type Service struct {
	store  Store
	events Events
	logger *slog.Logger
}

// NewService creates a Service. events may be nil when eventing is disabled.
func NewService(store Store, events Events, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, events: events, logger: logger}
}

// CreateParams are the caller-supplied fields for a new project.
type CreateParams struct {
	Name        string
	ProjectKey  string
	Description string
	Type        string
	OwnerID     uuid.UUID
}

// Create persists a project together with its three default workflow statuses
// and the owner membership as one atomic unit. A duplicate key aborts the
// whole unit with ErrConflict and leaves no partial rows behind.
func (s *Service) Create(ctx context.Context, arg CreateParams) (domain.Project, error) {
	projectID := uuid.New()
	key := domain.NormalizeKey(arg.ProjectKey)

	statuses := make([]db.CreateWorkflowStatusParams, 0, 3)
	for _, seed := range domain.DefaultWorkflow() {
		statuses = append(statuses, db.CreateWorkflowStatusParams{
			ID:         uuid.New(),
			ProjectID:  projectID,
			Code:       seed.Code,
			StatusName: seed.StatusName,
			OrderIndex: seed.OrderIndex,
			IsFinal:    seed.IsFinal,
			IsActive:   true,
		})
	}

	created, err := s.store.BootstrapProject(ctx, db.BootstrapProjectParams{
		Project: db.CreateProjectParams{
			ID:          projectID,
			Name:        arg.Name,
			ProjectKey:  key,
			Description: optional(arg.Description),
			Type:        optional(arg.Type),
			OwnerID:     arg.OwnerID,
		},
		Statuses: statuses,
		Owner: db.CreateProjectMemberParams{
			ID:        uuid.New(),
			ProjectID: projectID,
			UserID:    arg.OwnerID,
			Role:      string(domain.RoleOwner),
			Status:    string(domain.MemberActive),
		},
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("bootstrap project: %w", err)
	}

	s.publish(ctx, "projects.created", map[string]any{
		"project_id":  created.ID,
		"project_key": created.ProjectKey,
		"owner_id":    created.OwnerID,
	})
	return toProject(created), nil
}

// List returns every project. No paging in the current scope.
func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projects := make([]domain.Project, len(rows))
	for i, row := range rows {
		projects[i] = toProject(row)
	}
	return projects, nil
}

// Get returns one project; absence is ErrNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	row, err := s.store.GetProject(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("get project: %w", err)
	}
	return toProject(row), nil
}

// UpdateParams overwrite the mutable project fields.
type UpdateParams struct {
	Name        string
	ProjectKey  string
	Description string
	Type        string
	OwnerID     uuid.UUID
}

// Update overwrites name, key (re-normalized), type, and owner. Statuses and
// membership are untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, arg UpdateParams) (domain.Project, error) {
	row, err := s.store.UpdateProject(ctx, db.UpdateProjectParams{
		ID:          id,
		Name:        arg.Name,
		ProjectKey:  domain.NormalizeKey(arg.ProjectKey),
		Description: optional(arg.Description),
		Type:        optional(arg.Type),
		OwnerID:     arg.OwnerID,
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("update project: %w", err)
	}
	return toProject(row), nil
}

// Delete removes a project and, via the schema's cascade, its statuses and
// memberships.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.publish(ctx, "projects.deleted", map[string]any{"project_id": id})
	return nil
}

// ListStatuses returns the project's workflow statuses in display order.
// An empty list is a normal outcome.
func (s *Service) ListStatuses(ctx context.Context, projectID uuid.UUID) ([]domain.WorkflowStatus, error) {
	rows, err := s.store.ListProjectStatuses(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	statuses := make([]domain.WorkflowStatus, len(rows))
	for i, row := range rows {
		statuses[i] = toStatus(row)
	}
	return statuses, nil
}

func (s *Service) publish(ctx context.Context, subject string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		s.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}

func toProject(row db.Project) domain.Project {
	return domain.Project{
		ID:          row.ID,
		Name:        row.Name,
		ProjectKey:  row.ProjectKey,
		Description: deref(row.Description),
		Type:        deref(row.Type),
		OwnerID:     row.OwnerID,
		CreatedAt:   row.CreatedAt,
	}
}

func toStatus(row db.WorkflowStatus) domain.WorkflowStatus {
	return domain.WorkflowStatus{
		ID:          row.ID,
		ProjectID:   row.ProjectID,
		Code:        row.Code,
		StatusName:  row.StatusName,
		Description: deref(row.Description),
		OrderIndex:  row.OrderIndex,
		IsFinal:     row.IsFinal,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
