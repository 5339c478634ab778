package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLSpaceRepository is the minimal space surface the page engine needs:
// existence checks plus the CRUD to make the backend self-contained.
// Workspace membership checks happen upstream.
type SQLSpaceRepository struct{}

// NewSQLSpaceRepository creates a new SQLSpaceRepository.
func NewSQLSpaceRepository() *SQLSpaceRepository {
	return &SQLSpaceRepository{}
}

// Create inserts a new space and fills in its generated id.
func (r *SQLSpaceRepository) Create(ctx context.Context, q Querier, space *Space) error {
	now := time.Now().UTC()
	space.CreatedAt = now
	space.UpdatedAt = now
	query := `INSERT INTO spaces (workspace_id, slug, name, description, created_by, created_at, updated_at)
		VALUES (:workspace_id, :slug, :name, :description, :created_by, :created_at, :updated_at)`
	res, err := sqlx.NamedExecContext(ctx, q, query, space)
	if err != nil {
		return fmt.Errorf("failed to create space: %w", translateErr(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new space id: %w", err)
	}
	space.ID = id
	return nil
}

// GetByID retrieves a single space by its ID.
func (r *SQLSpaceRepository) GetByID(ctx context.Context, q Querier, id int64) (*Space, error) {
	var space Space
	query := `SELECT id, workspace_id, slug, name, description, created_by, created_at, updated_at FROM spaces WHERE id = ?`
	if err := sqlx.GetContext(ctx, q, &space, query, id); err != nil {
		return nil, fmt.Errorf("failed to get space %d: %w", id, translateErr(err))
	}
	return &space, nil
}

// Exists reports whether a space with the given id exists.
func (r *SQLSpaceRepository) Exists(ctx context.Context, q Querier, id int64) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count, `SELECT COUNT(1) FROM spaces WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("failed to check space existence: %w", err)
	}
	return count > 0, nil
}

// List retrieves all spaces, oldest first.
func (r *SQLSpaceRepository) List(ctx context.Context, q Querier) ([]*Space, error) {
	var spaces []*Space
	query := `SELECT id, workspace_id, slug, name, description, created_by, created_at, updated_at FROM spaces ORDER BY id`
	if err := sqlx.SelectContext(ctx, q, &spaces, query); err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	return spaces, nil
}
