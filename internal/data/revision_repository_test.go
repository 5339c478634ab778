//go:build integration

package data

import (
	"context"
	"errors"
	"testing"
)

func TestRevisionRepository_SequenceStartsAtOneAndIsGapFree(t *testing.T) {
	db := newTestDB(t)
	pageID := seedPage(t, db)
	repo := NewSQLRevisionRepository()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		next, err := repo.NextNumber(ctx, db, pageID)
		if err != nil {
			t.Fatalf("NextNumber failed: %v", err)
		}
		if next != i {
			t.Fatalf("expected next number %d, got %d", i, next)
		}
		rev := &Revision{PageID: pageID, RevisionNumber: next, Title: "t", Content: "c", EditorID: 1}
		if err := repo.Insert(ctx, db, rev); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if rev.ID == 0 {
			t.Error("expected generated id to be filled in")
		}
	}

	revs, err := repo.ListByPage(ctx, db, pageID)
	if err != nil {
		t.Fatalf("ListByPage failed: %v", err)
	}
	if len(revs) != 3 {
		t.Fatalf("expected 3 revisions, got %d", len(revs))
	}
	for i, want := range []int{3, 2, 1} {
		if revs[i].RevisionNumber != want {
			t.Errorf("expected revision %d at index %d, got %d", want, i, revs[i].RevisionNumber)
		}
	}
}

func TestRevisionRepository_DuplicateNumberRejected(t *testing.T) {
	db := newTestDB(t)
	pageID := seedPage(t, db)
	repo := NewSQLRevisionRepository()
	ctx := context.Background()

	rev := &Revision{PageID: pageID, RevisionNumber: 1, Title: "t", Content: "c", EditorID: 1}
	if err := repo.Insert(ctx, db, rev); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	dup := &Revision{PageID: pageID, RevisionNumber: 1, Title: "t2", Content: "c2", EditorID: 2}
	err := repo.Insert(ctx, db, dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestRevisionRepository_GetByNumber(t *testing.T) {
	db := newTestDB(t)
	pageID := seedPage(t, db)
	repo := NewSQLRevisionRepository()
	ctx := context.Background()

	rev := &Revision{PageID: pageID, RevisionNumber: 1, Title: "snapshot", Content: "c", EditorID: 1}
	if err := repo.Insert(ctx, db, rev); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := repo.GetByNumber(ctx, db, pageID, 1)
	if err != nil {
		t.Fatalf("GetByNumber failed: %v", err)
	}
	if got.Title != "snapshot" {
		t.Errorf("expected snapshot title, got %q", got.Title)
	}

	if _, err := repo.GetByNumber(ctx, db, pageID, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing revision, got %v", err)
	}
}
