package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLRevisionRepository appends and reads a page's immutable revision
// history. Revisions are never updated or renumbered after insertion.
type SQLRevisionRepository struct{}

// NewSQLRevisionRepository creates a new SQLRevisionRepository.
func NewSQLRevisionRepository() *SQLRevisionRepository {
	return &SQLRevisionRepository{}
}

// NextNumber computes the next revision number for a page: one past the
// current maximum, 1 when no revisions exist. The read-then-insert pair is a
// race under concurrent writers; callers must hold the page's write lock
// across NextNumber and Insert. The (page_id, revision_number) uniqueness
// constraint backstops the lock.
func (r *SQLRevisionRepository) NextNumber(ctx context.Context, q Querier, pageID int64) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(revision_number), 0) FROM revisions WHERE page_id = ?`
	if err := sqlx.GetContext(ctx, q, &max, query, pageID); err != nil {
		return 0, fmt.Errorf("failed to read max revision number for page %d: %w", pageID, err)
	}
	return max + 1, nil
}

// Insert appends one revision row and fills in its generated id.
func (r *SQLRevisionRepository) Insert(ctx context.Context, q Querier, rev *Revision) error {
	rev.CreatedAt = time.Now().UTC()
	query := `INSERT INTO revisions (page_id, revision_number, title, content, editor_id, created_at)
		VALUES (:page_id, :revision_number, :title, :content, :editor_id, :created_at)`
	res, err := sqlx.NamedExecContext(ctx, q, query, rev)
	if err != nil {
		return fmt.Errorf("failed to insert revision %d for page %d: %w", rev.RevisionNumber, rev.PageID, translateErr(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new revision id: %w", err)
	}
	rev.ID = id
	return nil
}

// ListByPage retrieves all revisions of a page, newest first.
func (r *SQLRevisionRepository) ListByPage(ctx context.Context, q Querier, pageID int64) ([]*Revision, error) {
	var revisions []*Revision
	query := `SELECT id, page_id, revision_number, title, content, editor_id, created_at
		FROM revisions WHERE page_id = ? ORDER BY revision_number DESC`
	if err := sqlx.SelectContext(ctx, q, &revisions, query, pageID); err != nil {
		return nil, fmt.Errorf("failed to list revisions for page %d: %w", pageID, err)
	}
	return revisions, nil
}

// GetByNumber retrieves one revision of a page by its revision number.
func (r *SQLRevisionRepository) GetByNumber(ctx context.Context, q Querier, pageID int64, number int) (*Revision, error) {
	var rev Revision
	query := `SELECT id, page_id, revision_number, title, content, editor_id, created_at
		FROM revisions WHERE page_id = ? AND revision_number = ?`
	if err := sqlx.GetContext(ctx, q, &rev, query, pageID, number); err != nil {
		return nil, fmt.Errorf("failed to get revision %d for page %d: %w", number, pageID, translateErr(err))
	}
	return &rev, nil
}
