package service

import (
	"context"
	"errors"
	"fmt"

	"go-wiki-backend/internal/data"

	"github.com/jmoiron/sqlx"
)

// TagServicer defines the interface for interacting with tags.
type TagServicer interface {
	CreateTag(ctx context.Context, slug, name string) (*data.Tag, error)
	ListTags(ctx context.Context) ([]*data.Tag, error)
}

// TagService provides the thin collaborator surface around tags.
type TagService struct {
	db   *sqlx.DB
	tags TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(db *sqlx.DB, tags TagRepository) *TagService {
	return &TagService{db: db, tags: tags}
}

// CreateTag creates a new tag.
func (s *TagService) CreateTag(ctx context.Context, slug, name string) (*data.Tag, error) {
	tag := &data.Tag{Slug: slug, Name: name}
	if err := s.tags.Create(ctx, s.db, tag); err != nil {
		if errors.Is(err, data.ErrDuplicate) {
			return nil, &ConflictError{Resource: "tag", Reason: fmt.Sprintf("slug '%s' already exists", slug)}
		}
		return nil, err
	}
	return tag, nil
}

// ListTags retrieves all tags.
func (s *TagService) ListTags(ctx context.Context) ([]*data.Tag, error) {
	return s.tags.List(ctx, s.db)
}
