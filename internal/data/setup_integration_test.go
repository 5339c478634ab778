//go:build integration

package data

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// newTestDB opens an isolated in-memory database with the real schema
// applied. A single pooled connection keeps the in-memory database alive and
// visible across queries.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.MustExec("PRAGMA foreign_keys = ON")

	schema, err := os.ReadFile("../../migrations/001_initial_schema.up.sql")
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	db.MustExec(string(schema))

	t.Cleanup(func() { db.Close() })
	return db
}

// seedPage inserts a space and one page and returns the page id.
func seedPage(t *testing.T, db *sqlx.DB) int64 {
	t.Helper()
	ctx := context.Background()

	spaces := NewSQLSpaceRepository()
	space := &Space{WorkspaceID: 1, Slug: "eng", Name: "Engineering", CreatedBy: 1}
	if err := spaces.Create(ctx, db, space); err != nil {
		t.Fatalf("Failed to seed space: %v", err)
	}

	pages := NewSQLPageRepository()
	page := &Page{SpaceID: space.ID, Slug: "getting-started", Title: "Getting Started", Content: "hello", CreatedBy: 1}
	if err := pages.Create(ctx, db, page); err != nil {
		t.Fatalf("Failed to seed page: %v", err)
	}
	return page.ID
}

func textSection(text string) *Section {
	return &Section{SectionType: "paragraph", Text: &text}
}
