package db

import (
	"context"

	"github.com/google/uuid"
)

const statusColumns = `id, project_id, code, status_name, description,
	order_index, is_final, is_active, created_at, updated_at`

// CreateWorkflowStatusParams holds the insert values for one status row.
type CreateWorkflowStatusParams struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Code        string
	StatusName  string
	Description *string
	OrderIndex  int32
	IsFinal     bool
	IsActive    bool
}

func (q *Queries) CreateWorkflowStatus(ctx context.Context, arg CreateWorkflowStatusParams) (WorkflowStatus, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO workflow_statuses
			(id, project_id, code, status_name, description, order_index, is_final, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+statusColumns,
		arg.ID, arg.ProjectID, arg.Code, arg.StatusName, arg.Description,
		arg.OrderIndex, arg.IsFinal, arg.IsActive,
	)
	return scanStatus(row)
}

func (q *Queries) ListProjectStatuses(ctx context.Context, projectID uuid.UUID) ([]WorkflowStatus, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+statusColumns+`
		FROM workflow_statuses
		WHERE project_id = $1
		ORDER BY order_index`, projectID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var statuses []WorkflowStatus
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, translateErr(rows.Err())
}

func scanStatus(row rowScanner) (WorkflowStatus, error) {
	var s WorkflowStatus
	err := row.Scan(&s.ID, &s.ProjectID, &s.Code, &s.StatusName, &s.Description,
		&s.OrderIndex, &s.IsFinal, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, translateErr(err)
}
