package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps Queries with pool-level operations that need transactions.
type Store struct {
	*Queries
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Queries: New(pool), pool: pool}
}

// BootstrapProjectParams is the full set of rows created when a project is
// born: the project itself, its default workflow, and the owner membership.
type BootstrapProjectParams struct {
	Project  CreateProjectParams
	Statuses []CreateWorkflowStatusParams
	Owner    CreateProjectMemberParams
}

// BootstrapProject creates a project, its workflow statuses, and the owner
// membership as one transaction. Either all rows commit or none do; a unique
// violation on the project key aborts the whole unit as a Conflict.
func (s *Store) BootstrapProject(ctx context.Context, arg BootstrapProjectParams) (Project, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("begin bootstrap tx: %w", err)
	}
	defer tx.Rollback(ctx)

	q := s.WithTx(tx)

	project, err := q.CreateProject(ctx, arg.Project)
	if err != nil {
		return Project{}, fmt.Errorf("insert project: %w", err)
	}

	for _, status := range arg.Statuses {
		if _, err := q.CreateWorkflowStatus(ctx, status); err != nil {
			return Project{}, fmt.Errorf("insert status %s: %w", status.Code, err)
		}
	}

	if _, err := q.CreateProjectMember(ctx, arg.Owner); err != nil {
		return Project{}, fmt.Errorf("insert owner membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Project{}, fmt.Errorf("commit bootstrap tx: %w", err)
	}
	return project, nil
}
