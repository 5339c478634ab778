//go:build integration

package data

import (
	"context"
	"errors"
	"testing"
)

func TestPageRepository_DuplicateSlugInSpace(t *testing.T) {
	db := newTestDB(t)
	seedPage(t, db)
	repo := NewSQLPageRepository()
	ctx := context.Background()

	dup := &Page{SpaceID: 1, Slug: "getting-started", Title: "Again", Content: "", CreatedBy: 1}
	err := repo.Create(ctx, db, dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for same slug in space, got %v", err)
	}

	other := &Page{SpaceID: 1, Slug: "another", Title: "Another", Content: "", CreatedBy: 1}
	if err := repo.Create(ctx, db, other); err != nil {
		t.Errorf("expected distinct slug to insert, got %v", err)
	}
}

func TestPageRepository_ListExcludesSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	pageID := seedPage(t, db)
	repo := NewSQLPageRepository()
	ctx := context.Background()

	if err := repo.SoftDelete(ctx, db, pageID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	visible, err := repo.List(ctx, db, PageFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("expected soft-deleted page hidden, got %d pages", len(visible))
	}

	all, err := repo.List(ctx, db, PageFilter{IncludeDeleted: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 || !all[0].IsDeleted {
		t.Errorf("expected soft-deleted page listed when asked, got %+v", all)
	}

	// The row itself survives.
	page, err := repo.GetByID(ctx, db, pageID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !page.IsDeleted {
		t.Errorf("expected is_deleted set")
	}
}

func TestPageRepository_HardDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	pageID := seedPage(t, db)
	pages := NewSQLPageRepository()
	sections := NewSQLSectionRepository("sqlite3")
	revisions := NewSQLRevisionRepository()
	ctx := context.Background()

	if err := sections.Replace(ctx, db, pageID, []*Section{textSection("a")}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	rev := &Revision{PageID: pageID, RevisionNumber: 1, Title: "t", Content: "c", EditorID: 1}
	if err := revisions.Insert(ctx, db, rev); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := pages.HardDelete(ctx, db, pageID); err != nil {
		t.Fatalf("HardDelete failed: %v", err)
	}

	if _, err := pages.GetByID(ctx, db, pageID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected page gone, got %v", err)
	}
	secs, err := sections.ListByPage(ctx, db, pageID)
	if err != nil {
		t.Fatalf("ListByPage failed: %v", err)
	}
	if len(secs) != 0 {
		t.Errorf("expected sections cascaded, got %d", len(secs))
	}
	revs, err := revisions.ListByPage(ctx, db, pageID)
	if err != nil {
		t.Fatalf("ListByPage failed: %v", err)
	}
	if len(revs) != 0 {
		t.Errorf("expected revisions cascaded, got %d", len(revs))
	}
}

func TestPageRepository_UpdateMissingPage(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLPageRepository()
	ctx := context.Background()

	err := repo.Update(ctx, db, &Page{ID: 404, Title: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
