package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLTagRepository handles tags and their links to pages. Tag management
// itself is a thin collaborator surface; the page engine only verifies ids
// and replaces a page's link set.
type SQLTagRepository struct{}

// NewSQLTagRepository creates a new SQLTagRepository.
func NewSQLTagRepository() *SQLTagRepository {
	return &SQLTagRepository{}
}

// Create inserts a new tag and fills in its generated id.
func (r *SQLTagRepository) Create(ctx context.Context, q Querier, tag *Tag) error {
	res, err := sqlx.NamedExecContext(ctx, q, `INSERT INTO tags (slug, name) VALUES (:slug, :name)`, tag)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", translateErr(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new tag id: %w", err)
	}
	tag.ID = id
	return nil
}

// List retrieves all tags ordered by name.
func (r *SQLTagRepository) List(ctx context.Context, q Querier) ([]*Tag, error) {
	var tags []*Tag
	if err := sqlx.SelectContext(ctx, q, &tags, `SELECT id, slug, name FROM tags ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetByIDs retrieves the tags with the given ids. Missing ids are simply
// absent from the result; the caller decides whether that is an error.
func (r *SQLTagRepository) GetByIDs(ctx context.Context, q Querier, ids []int64) ([]*Tag, error) {
	if len(ids) == 0 {
		return []*Tag{}, nil
	}
	query, args, err := sqlx.In(`SELECT id, slug, name FROM tags WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build tag query: %w", err)
	}
	query = q.Rebind(query)
	var tags []*Tag
	if err := sqlx.SelectContext(ctx, q, &tags, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, nil
}

// ListByPage retrieves the tags linked to a page.
func (r *SQLTagRepository) ListByPage(ctx context.Context, q Querier, pageID int64) ([]*Tag, error) {
	var tags []*Tag
	query := `SELECT t.id, t.slug, t.name FROM tags t
		JOIN page_tags pt ON pt.tag_id = t.id
		WHERE pt.page_id = ? ORDER BY t.name`
	if err := sqlx.SelectContext(ctx, q, &tags, query, pageID); err != nil {
		return nil, fmt.Errorf("failed to list tags for page %d: %w", pageID, err)
	}
	return tags, nil
}

// ReplacePageTags swaps the page's tag links for the given tag ids.
func (r *SQLTagRepository) ReplacePageTags(ctx context.Context, q Querier, pageID int64, tagIDs []int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM page_tags WHERE page_id = ?`, pageID); err != nil {
		return fmt.Errorf("failed to clear page tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := q.ExecContext(ctx, `INSERT INTO page_tags (page_id, tag_id) VALUES (?, ?)`, pageID, tagID); err != nil {
			return fmt.Errorf("failed to link tag %d to page %d: %w", tagID, pageID, translateErr(err))
		}
	}
	return nil
}
