package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLSectionRepository stores the ordered section set of a page. The set is
// only ever replaced wholesale: the (page_id, position) uniqueness constraint
// makes in-place renumbering of existing rows collide mid-update, so Replace
// deletes the old rows and inserts fresh ones.
type SQLSectionRepository struct {
	driver string
}

// NewSQLSectionRepository creates a new SQLSectionRepository. The driver name
// is needed because the id-sequence resynchronization after a bulk delete is
// store-specific.
func NewSQLSectionRepository(driver string) *SQLSectionRepository {
	return &SQLSectionRepository{driver: driver}
}

// ListByPage retrieves a page's sections in ascending position order.
func (r *SQLSectionRepository) ListByPage(ctx context.Context, q Querier, pageID int64) ([]*Section, error) {
	var sections []*Section
	query := `SELECT id, page_id, position, section_type, header, text, media_url, caption, code, language, created_at, updated_at
		FROM page_sections WHERE page_id = ? ORDER BY position`
	if err := sqlx.SelectContext(ctx, q, &sections, query, pageID); err != nil {
		return nil, fmt.Errorf("failed to list sections for page %d: %w", pageID, err)
	}
	return sections, nil
}

// Replace atomically swaps the page's stored sections for the given set.
// The rows are inserted with positions renumbered 0..N-1 in the order they
// are supplied; callers must not assume section ids survive a replace. Must
// run inside the same transaction as the page's own field updates.
func (r *SQLSectionRepository) Replace(ctx context.Context, q Querier, pageID int64, sections []*Section) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM page_sections WHERE page_id = ?`, pageID); err != nil {
		return fmt.Errorf("failed to delete existing sections: %w", err)
	}

	// Required between the delete and the inserts: ids issued for the fresh
	// rows must not collide with ids issued before the delete.
	if err := r.resyncIDSequence(ctx, q); err != nil {
		return fmt.Errorf("failed to resync section id sequence: %w", err)
	}

	now := time.Now().UTC()
	for i, s := range sections {
		s.PageID = pageID
		s.Position = i
		s.CreatedAt = now
		s.UpdatedAt = now
		query := `INSERT INTO page_sections (page_id, position, section_type, header, text, media_url, caption, code, language, created_at, updated_at)
			VALUES (:page_id, :position, :section_type, :header, :text, :media_url, :caption, :code, :language, :created_at, :updated_at)`
		res, err := sqlx.NamedExecContext(ctx, q, query, s)
		if err != nil {
			return fmt.Errorf("failed to insert section at position %d: %w", i, translateErr(err))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read new section id: %w", err)
		}
		s.ID = id
	}
	return nil
}

// resyncIDSequence repairs the section id generator after a bulk delete so
// new inserts cannot be handed an id that was already issued.
func (r *SQLSectionRepository) resyncIDSequence(ctx context.Context, q Querier) error {
	switch r.driver {
	case "sqlite", "sqlite3":
		// page_sections is declared AUTOINCREMENT, which keeps the
		// sqlite_sequence counter monotonic across deletes. The update below
		// repairs databases restored from dumps that lost the counter.
		_, err := q.ExecContext(ctx, `UPDATE sqlite_sequence
			SET seq = (SELECT COALESCE(MAX(id), 0) FROM page_sections)
			WHERE name = 'page_sections' AND seq < (SELECT COALESCE(MAX(id), 0) FROM page_sections)`)
		if err != nil {
			return fmt.Errorf("failed to update sqlite_sequence: %w", err)
		}
		return nil
	case "mysql":
		// InnoDB persists the AUTO_INCREMENT counter and never lowers it on
		// DELETE, so no statement is needed.
		return nil
	}
	return fmt.Errorf("unsupported driver %q", r.driver)
}
