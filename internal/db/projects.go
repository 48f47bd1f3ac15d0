package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskflowhq/projectd/internal/domain"
)

const projectColumns = `id, name, project_key, description, type, owner_id, created_at`

// CreateProjectParams holds the insert values for a project row.
type CreateProjectParams struct {
	ID          uuid.UUID
	Name        string
	ProjectKey  string
	Description *string
	Type        *string
	OwnerID     uuid.UUID
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO projects (id, name, project_key, description, type, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+projectColumns,
		arg.ID, arg.Name, arg.ProjectKey, arg.Description, arg.Type, arg.OwnerID,
	)
	return scanProject(row)
}

func (q *Queries) GetProject(ctx context.Context, id uuid.UUID) (Project, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+projectColumns+` FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, translateErr(rows.Err())
}

// UpdateProjectParams overwrites the mutable project fields.
type UpdateProjectParams struct {
	ID          uuid.UUID
	Name        string
	ProjectKey  string
	Description *string
	Type        *string
	OwnerID     uuid.UUID
}

func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE projects
		SET name = $2, project_key = $3, description = $4, type = $5, owner_id = $6
		WHERE id = $1
		RETURNING `+projectColumns,
		arg.ID, arg.Name, arg.ProjectKey, arg.Description, arg.Type, arg.OwnerID,
	)
	return scanProject(row)
}

// DeleteProject removes a project. Child statuses and memberships go with it
// via ON DELETE CASCADE.
func (q *Queries) DeleteProject(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.ProjectKey, &p.Description, &p.Type, &p.OwnerID, &p.CreatedAt)
	return p, translateErr(err)
}
