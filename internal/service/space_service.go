package service

import (
	"context"
	"errors"
	"fmt"

	"go-wiki-backend/internal/data"

	"github.com/jmoiron/sqlx"
)

// SpaceServicer defines the interface for interacting with spaces.
type SpaceServicer interface {
	CreateSpace(ctx context.Context, in CreateSpaceInput) (*data.Space, error)
	GetSpace(ctx context.Context, id int64) (*data.Space, error)
	ListSpaces(ctx context.Context) ([]*data.Space, error)
}

// CreateSpaceInput carries everything needed to create a space.
type CreateSpaceInput struct {
	WorkspaceID int64
	Slug        string
	Name        string
	Description string
	CreatedBy   int64
}

// SpaceService provides the thin collaborator surface around spaces the
// page engine depends on.
type SpaceService struct {
	db     *sqlx.DB
	spaces SpaceRepository
}

// NewSpaceService creates a new SpaceService.
func NewSpaceService(db *sqlx.DB, spaces SpaceRepository) *SpaceService {
	return &SpaceService{db: db, spaces: spaces}
}

// CreateSpace creates a new space within a workspace.
func (s *SpaceService) CreateSpace(ctx context.Context, in CreateSpaceInput) (*data.Space, error) {
	space := &data.Space{
		WorkspaceID: in.WorkspaceID,
		Slug:        in.Slug,
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   in.CreatedBy,
	}
	if err := s.spaces.Create(ctx, s.db, space); err != nil {
		if errors.Is(err, data.ErrDuplicate) {
			return nil, &ConflictError{Resource: "space", Reason: fmt.Sprintf("slug '%s' already exists in workspace %d", in.Slug, in.WorkspaceID)}
		}
		return nil, err
	}
	return space, nil
}

// GetSpace retrieves a single space by its ID.
func (s *SpaceService) GetSpace(ctx context.Context, id int64) (*data.Space, error) {
	space, err := s.spaces.GetByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, notFound("space", id)
		}
		return nil, err
	}
	return space, nil
}

// ListSpaces retrieves all spaces.
func (s *SpaceService) ListSpaces(ctx context.Context) ([]*data.Space, error) {
	return s.spaces.List(ctx, s.db)
}
