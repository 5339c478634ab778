package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLPageRepository is a concrete implementation of the page repository
// interface using sqlx.
type SQLPageRepository struct{}

// NewSQLPageRepository creates a new SQLPageRepository.
func NewSQLPageRepository() *SQLPageRepository {
	return &SQLPageRepository{}
}

// PageFilter narrows the result of List.
type PageFilter struct {
	SpaceID        *int64
	IncludeDeleted bool
	Limit          int
	Offset         int
}

const pageColumns = `id, space_id, slug, title, content, created_by, updated_by, is_deleted, created_at, updated_at`

// Create inserts a new page and fills in its generated id.
func (r *SQLPageRepository) Create(ctx context.Context, q Querier, page *Page) error {
	now := time.Now().UTC()
	page.CreatedAt = now
	page.UpdatedAt = now
	query := `INSERT INTO pages (space_id, slug, title, content, created_by, updated_by, is_deleted, created_at, updated_at)
		VALUES (:space_id, :slug, :title, :content, :created_by, :updated_by, :is_deleted, :created_at, :updated_at)`
	res, err := sqlx.NamedExecContext(ctx, q, query, page)
	if err != nil {
		return fmt.Errorf("failed to execute create page query: %w", translateErr(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new page id: %w", err)
	}
	page.ID = id
	return nil
}

// GetByID retrieves a single page from the database by its ID.
func (r *SQLPageRepository) GetByID(ctx context.Context, q Querier, id int64) (*Page, error) {
	var page Page
	query := `SELECT ` + pageColumns + ` FROM pages WHERE id = ?`
	if err := sqlx.GetContext(ctx, q, &page, query, id); err != nil {
		return nil, fmt.Errorf("failed to get page %d: %w", id, translateErr(err))
	}
	return &page, nil
}

// GetBySpaceAndSlug retrieves a single page by its space and slug.
func (r *SQLPageRepository) GetBySpaceAndSlug(ctx context.Context, q Querier, spaceID int64, slug string) (*Page, error) {
	var page Page
	query := `SELECT ` + pageColumns + ` FROM pages WHERE space_id = ? AND slug = ?`
	if err := sqlx.GetContext(ctx, q, &page, query, spaceID, slug); err != nil {
		return nil, fmt.Errorf("failed to get page '%s' in space %d: %w", slug, spaceID, translateErr(err))
	}
	return &page, nil
}

// SlugExists reports whether a page with the given slug already exists in
// the space.
func (r *SQLPageRepository) SlugExists(ctx context.Context, q Querier, spaceID int64, slug string) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM pages WHERE space_id = ? AND slug = ?`
	if err := sqlx.GetContext(ctx, q, &count, query, spaceID, slug); err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return count > 0, nil
}

// List retrieves pages matching the filter, soft-deleted pages excluded
// unless asked for.
func (r *SQLPageRepository) List(ctx context.Context, q Querier, filter PageFilter) ([]*Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE 1=1`
	args := []interface{}{}
	if filter.SpaceID != nil {
		query += ` AND space_id = ?`
		args = append(args, *filter.SpaceID)
	}
	if !filter.IncludeDeleted {
		query += ` AND is_deleted = ?`
		args = append(args, false)
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	var pages []*Page
	if err := sqlx.SelectContext(ctx, q, &pages, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// Update writes the page's mutable fields back to the database.
func (r *SQLPageRepository) Update(ctx context.Context, q Querier, page *Page) error {
	page.UpdatedAt = time.Now().UTC()
	query := `UPDATE pages SET title = :title, content = :content, updated_by = :updated_by,
		is_deleted = :is_deleted, updated_at = :updated_at WHERE id = :id`
	result, err := sqlx.NamedExecContext(ctx, q, query, page)
	if err != nil {
		return fmt.Errorf("failed to update page: %w", translateErr(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no page to update with id %d: %w", page.ID, ErrNotFound)
	}
	return nil
}

// SoftDelete marks a page as deleted without touching its sections or
// revision history.
func (r *SQLPageRepository) SoftDelete(ctx context.Context, q Querier, id int64) error {
	query := `UPDATE pages SET is_deleted = ?, updated_at = ? WHERE id = ?`
	result, err := q.ExecContext(ctx, query, true, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete page: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no page to delete with id %d: %w", id, ErrNotFound)
	}
	return nil
}

// HardDelete removes a page permanently. Sections, revisions and tag links
// go with it via the schema's cascading foreign keys.
func (r *SQLPageRepository) HardDelete(ctx context.Context, q Querier, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no page to delete with id %d: %w", id, ErrNotFound)
	}
	return nil
}
