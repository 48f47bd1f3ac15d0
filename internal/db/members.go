package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/domain"
)

const memberColumns = `id, project_id, user_id, role, status, joined_at, updated_at`

// CreateProjectMemberParams holds the insert values for a membership row.
type CreateProjectMemberParams struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string
	Status    string
}

func (q *Queries) CreateProjectMember(ctx context.Context, arg CreateProjectMemberParams) (ProjectMember, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO project_members (id, project_id, user_id, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+memberColumns,
		arg.ID, arg.ProjectID, arg.UserID, arg.Role, arg.Status,
	)
	return scanMember(row)
}

// GetProjectMemberParams identifies one membership by its natural key.
type GetProjectMemberParams struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
}

func (q *Queries) GetProjectMember(ctx context.Context, arg GetProjectMemberParams) (ProjectMember, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+memberColumns+`
		FROM project_members
		WHERE project_id = $1 AND user_id = $2`,
		arg.ProjectID, arg.UserID,
	)
	return scanMember(row)
}

func (q *Queries) ListProjectMembers(ctx context.Context, projectID uuid.UUID) ([]ProjectMember, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+memberColumns+`
		FROM project_members
		WHERE project_id = $1
		ORDER BY joined_at`, projectID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var members []ProjectMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, translateErr(rows.Err())
}

// UpdateProjectMemberRoleParams overwrites a member's role.
type UpdateProjectMemberRoleParams struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string
}

func (q *Queries) UpdateProjectMemberRole(ctx context.Context, arg UpdateProjectMemberRoleParams) (ProjectMember, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE project_members
		SET role = $3, updated_at = now()
		WHERE project_id = $1 AND user_id = $2
		RETURNING `+memberColumns,
		arg.ProjectID, arg.UserID, arg.Role,
	)
	return scanMember(row)
}

// DeleteProjectMemberParams identifies the membership to remove.
type DeleteProjectMemberParams struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
}

func (q *Queries) DeleteProjectMember(ctx context.Context, arg DeleteProjectMemberParams) error {
	tag, err := q.db.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`,
		arg.ProjectID, arg.UserID,
	)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMember(row rowScanner) (ProjectMember, error) {
	var m ProjectMember
	err := row.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt, &m.UpdatedAt)
	return m, translateErr(err)
}
