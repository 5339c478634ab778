package data

import (
	"time"
)

// Space is a container for pages inside a workspace. Workspace membership is
// enforced upstream; the workspace is referenced by id only.
type Space struct {
	ID          int64     `db:"id" json:"id"`
	WorkspaceID int64     `db:"workspace_id" json:"workspace_id"`
	Slug        string    `db:"slug" json:"slug"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedBy   int64     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Page represents a single wiki page in the database. Content is the
// denormalized plain-text fallback and is never null: it is either supplied
// by the author or derived from the page's sections.
type Page struct {
	ID        int64     `db:"id" json:"id"`
	SpaceID   int64     `db:"space_id" json:"space_id"`
	Slug      string    `db:"slug" json:"slug"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	CreatedBy int64     `db:"created_by" json:"created_by"`
	UpdatedBy *int64    `db:"updated_by" json:"updated_by,omitempty"`
	IsDeleted bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Sections []*Section `db:"-" json:"sections"`
	Tags     []*Tag     `db:"-" json:"tags"`
}

// Section is one typed, positioned block of structured page content.
// (page_id, position) is unique; the whole set is replaced wholesale, never
// patched row by row.
type Section struct {
	ID          int64     `db:"id" json:"id"`
	PageID      int64     `db:"page_id" json:"page_id"`
	Position    int       `db:"position" json:"position"`
	SectionType string    `db:"section_type" json:"section_type"`
	Header      *string   `db:"header" json:"header,omitempty"`
	Text        *string   `db:"text" json:"text,omitempty"`
	MediaURL    *string   `db:"media_url" json:"media_url,omitempty"`
	Caption     *string   `db:"caption" json:"caption,omitempty"`
	Code        *string   `db:"code" json:"code,omitempty"`
	Language    *string   `db:"language" json:"language,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Revision is an immutable, numbered snapshot of a page's title and content.
// revision_number starts at 1 and increases by exactly 1 per revision of the
// page. There is no updated_at: revisions are never modified after insert.
type Revision struct {
	ID             int64     `db:"id" json:"id"`
	PageID         int64     `db:"page_id" json:"page_id"`
	RevisionNumber int       `db:"revision_number" json:"revision_number"`
	Title          string    `db:"title" json:"title"`
	Content        string    `db:"content" json:"content"`
	EditorID       int64     `db:"editor_id" json:"editor_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Tag labels pages across spaces.
type Tag struct {
	ID   int64  `db:"id" json:"id"`
	Slug string `db:"slug" json:"slug"`
	Name string `db:"name" json:"name"`
}
