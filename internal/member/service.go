// Package member implements the project roster: listing, adding (directly or
// by email through the user directory), role changes, and removal.
package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/db"
	"github.com/taskflowhq/projectd/internal/domain"
	"github.com/taskflowhq/projectd/internal/identity"
)

// Store is the persistence surface the service needs, implemented by *db.Store.
type Store interface {
	GetProject(ctx context.Context, id uuid.UUID) (db.Project, error)
	GetProjectMember(ctx context.Context, arg db.GetProjectMemberParams) (db.ProjectMember, error)
	ListProjectMembers(ctx context.Context, projectID uuid.UUID) ([]db.ProjectMember, error)
	CreateProjectMember(ctx context.Context, arg db.CreateProjectMemberParams) (db.ProjectMember, error)
	UpdateProjectMemberRole(ctx context.Context, arg db.UpdateProjectMemberRoleParams) (db.ProjectMember, error)
	DeleteProjectMember(ctx context.Context, arg db.DeleteProjectMemberParams) error
}

// Events publishes lifecycle events. May be nil when eventing is disabled.
type Events interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// Service orchestrates membership operations.
type Service struct {
	store    Store
	resolver identity.Resolver
	events   Events
	logger   *slog.Logger
}

// NewService creates a Service.
func NewService(store Store, resolver identity.Resolver, events Events, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, resolver: resolver, events: events, logger: logger}
}

// List returns all members of the project.
func (s *Service) List(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectMember, error) {
	rows, err := s.store.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	members := make([]domain.ProjectMember, len(rows))
	for i, row := range rows {
		members[i] = toMember(row)
	}
	return members, nil
}

// Add inserts a membership for a known user id. The acting user must hold
// OWNER or ADMIN on the project; both add paths share the same guard.
func (s *Service) Add(ctx context.Context, projectID, actorID, userID uuid.UUID, role domain.Role) (domain.ProjectMember, error) {
	if err := s.requireManager(ctx, projectID, actorID); err != nil {
		return domain.ProjectMember{}, err
	}

	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return domain.ProjectMember{}, fmt.Errorf("get project: %w", err)
	}

	if _, err := s.store.GetProjectMember(ctx, db.GetProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
	}); err == nil {
		return domain.ProjectMember{}, fmt.Errorf("%w: user %s is already a member", domain.ErrConflict, userID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.ProjectMember{}, fmt.Errorf("check membership: %w", err)
	}

	return s.insert(ctx, projectID, userID, role)
}

// AddByEmail resolves an email through the user directory and inserts the
// membership. The guard runs before the directory call so unauthorized
// callers never trigger, wait on, or observe identity resolution.
func (s *Service) AddByEmail(ctx context.Context, projectID uuid.UUID, email string, role domain.Role, actorID uuid.UUID, credential string) (domain.ProjectMember, error) {
	if err := s.requireManager(ctx, projectID, actorID); err != nil {
		return domain.ProjectMember{}, err
	}

	user, err := s.resolver.ResolveByEmail(ctx, email, credential)
	if err != nil {
		// Directory-down and user-absent are the same outcome at this layer.
		return domain.ProjectMember{}, fmt.Errorf("resolve %q: %w", email, err)
	}

	if _, err := s.store.GetProjectMember(ctx, db.GetProjectMemberParams{
		ProjectID: projectID,
		UserID:    user.ID,
	}); err == nil {
		return domain.ProjectMember{}, fmt.Errorf("%w: %s is already a member", domain.ErrConflict, email)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.ProjectMember{}, fmt.Errorf("check membership: %w", err)
	}

	// Existence check deliberately after resolution; see DESIGN.md.
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return domain.ProjectMember{}, fmt.Errorf("get project: %w", err)
	}

	return s.insert(ctx, projectID, user.ID, role)
}

// UpdateRole overwrites a member's role. Any role may be assigned, including
// OWNER; restricting who calls this is the boundary's job.
func (s *Service) UpdateRole(ctx context.Context, projectID, userID uuid.UUID, role domain.Role) (domain.ProjectMember, error) {
	row, err := s.store.UpdateProjectMemberRole(ctx, db.UpdateProjectMemberRoleParams{
		ProjectID: projectID,
		UserID:    userID,
		Role:      string(role),
	})
	if err != nil {
		return domain.ProjectMember{}, fmt.Errorf("update member role: %w", err)
	}

	s.publish(ctx, "members.updated", map[string]any{
		"project_id": projectID,
		"user_id":    userID,
		"role":       role,
	})
	return toMember(row), nil
}

// Remove deletes a membership. Removing the last OWNER is not blocked.
func (s *Service) Remove(ctx context.Context, projectID, userID uuid.UUID) error {
	err := s.store.DeleteProjectMember(ctx, db.DeleteProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
	})
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}

	s.publish(ctx, "members.removed", map[string]any{
		"project_id": projectID,
		"user_id":    userID,
	})
	return nil
}

// requireManager verifies the actor is an OWNER or ADMIN of the project.
func (s *Service) requireManager(ctx context.Context, projectID, actorID uuid.UUID) error {
	actor, err := s.store.GetProjectMember(ctx, db.GetProjectMemberParams{
		ProjectID: projectID,
		UserID:    actorID,
	})
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: not a project member", domain.ErrForbidden)
	}
	if err != nil {
		return fmt.Errorf("load requesting member: %w", err)
	}
	if !domain.Role(actor.Role).CanManageMembers() {
		return fmt.Errorf("%w: only owners and admins can manage members", domain.ErrForbidden)
	}
	return nil
}

func (s *Service) insert(ctx context.Context, projectID, userID uuid.UUID, role domain.Role) (domain.ProjectMember, error) {
	row, err := s.store.CreateProjectMember(ctx, db.CreateProjectMemberParams{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      string(role),
		Status:    string(domain.MemberActive),
	})
	if err != nil {
		// The (project_id, user_id) constraint decides races the pre-check
		// could not see.
		return domain.ProjectMember{}, fmt.Errorf("insert member: %w", err)
	}

	s.publish(ctx, "members.added", map[string]any{
		"project_id": projectID,
		"user_id":    userID,
		"role":       role,
	})
	return toMember(row), nil
}

func (s *Service) publish(ctx context.Context, subject string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		s.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}

func toMember(row db.ProjectMember) domain.ProjectMember {
	return domain.ProjectMember{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		UserID:    row.UserID,
		Role:      domain.Role(row.Role),
		Status:    domain.MemberStatus(row.Status),
		JoinedAt:  row.JoinedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
