package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-wiki-backend/internal/cache"
	"go-wiki-backend/internal/data"
	"go-wiki-backend/internal/logger"

	"github.com/jmoiron/sqlx"
	"github.com/microcosm-cc/bluemonday"
)

// PageRepository defines the interface for database operations on pages.
type PageRepository interface {
	Create(ctx context.Context, q data.Querier, page *data.Page) error
	GetByID(ctx context.Context, q data.Querier, id int64) (*data.Page, error)
	GetBySpaceAndSlug(ctx context.Context, q data.Querier, spaceID int64, slug string) (*data.Page, error)
	SlugExists(ctx context.Context, q data.Querier, spaceID int64, slug string) (bool, error)
	List(ctx context.Context, q data.Querier, filter data.PageFilter) ([]*data.Page, error)
	Update(ctx context.Context, q data.Querier, page *data.Page) error
	SoftDelete(ctx context.Context, q data.Querier, id int64) error
	HardDelete(ctx context.Context, q data.Querier, id int64) error
}

// SectionRepository defines the interface for a page's section set.
type SectionRepository interface {
	ListByPage(ctx context.Context, q data.Querier, pageID int64) ([]*data.Section, error)
	Replace(ctx context.Context, q data.Querier, pageID int64, sections []*data.Section) error
}

// RevisionRepository defines the interface for a page's revision history.
type RevisionRepository interface {
	NextNumber(ctx context.Context, q data.Querier, pageID int64) (int, error)
	Insert(ctx context.Context, q data.Querier, rev *data.Revision) error
	ListByPage(ctx context.Context, q data.Querier, pageID int64) ([]*data.Revision, error)
	GetByNumber(ctx context.Context, q data.Querier, pageID int64, number int) (*data.Revision, error)
}

// SpaceRepository defines the interface for spaces.
type SpaceRepository interface {
	Create(ctx context.Context, q data.Querier, space *data.Space) error
	GetByID(ctx context.Context, q data.Querier, id int64) (*data.Space, error)
	Exists(ctx context.Context, q data.Querier, id int64) (bool, error)
	List(ctx context.Context, q data.Querier) ([]*data.Space, error)
}

// TagRepository defines the interface for tags and page-tag links.
type TagRepository interface {
	Create(ctx context.Context, q data.Querier, tag *data.Tag) error
	List(ctx context.Context, q data.Querier) ([]*data.Tag, error)
	GetByIDs(ctx context.Context, q data.Querier, ids []int64) ([]*data.Tag, error)
	ListByPage(ctx context.Context, q data.Querier, pageID int64) ([]*data.Tag, error)
	ReplacePageTags(ctx context.Context, q data.Querier, pageID int64, tagIDs []int64) error
}

// PageServicer defines the interface for interacting with pages.
type PageServicer interface {
	CreatePage(ctx context.Context, in CreatePageInput) (*data.Page, error)
	GetPage(ctx context.Context, id int64) (*data.Page, error)
	GetPageBySlug(ctx context.Context, spaceID int64, slug string) (*data.Page, error)
	ListPages(ctx context.Context, filter data.PageFilter) ([]*data.Page, error)
	UpdatePage(ctx context.Context, id int64, in UpdatePageInput) (*data.Page, error)
	DeletePage(ctx context.Context, id int64, hard bool) error
	ListRevisions(ctx context.Context, pageID int64) ([]*data.Revision, error)
	GetRevision(ctx context.Context, pageID int64, number int) (*data.Revision, error)
	RenderPageHTML(ctx context.Context, pageID int64) (string, error)
	PageMarkup(ctx context.Context, pageID int64) (string, error)
}

// CreatePageInput carries everything needed to create a page. Content nil
// means "derive from sections"; an explicit value always wins.
type CreatePageInput struct {
	SpaceID   int64
	CreatedBy int64
	Slug      string
	Title     string
	Content   *string
	Sections  []SectionInput
	TagIDs    []int64
}

// UpdatePageInput is a patch: nil fields are left untouched. Sections nil
// means "keep the stored set"; an empty non-nil slice clears it. UpdatedBy
// nil skips revision recording even when content changed.
type UpdatePageInput struct {
	Title     *string
	Content   *string
	IsDeleted *bool
	UpdatedBy *int64
	TagIDs    *[]int64
	Sections  *[]SectionInput
}

const renderCacheTTL = 10 * time.Minute

// PageService orchestrates page writes: it composes section validation, the
// section replacer, text projection and the revision sequencer so every
// orchestrated write commits as a single transaction.
type PageService struct {
	db        *sqlx.DB
	pages     PageRepository
	sections  SectionRepository
	revisions RevisionRepository
	spaces    SpaceRepository
	tags      TagRepository
	cache     *cache.Cache
	renderer  *Renderer
	sanitizer *bluemonday.Policy
	log       logger.Logger
	locks     *pageLocks
}

// NewPageService creates a new PageService with the given dependencies.
func NewPageService(db *sqlx.DB, pages PageRepository, sections SectionRepository,
	revisions RevisionRepository, spaces SpaceRepository, tags TagRepository,
	c *cache.Cache, log logger.Logger) *PageService {
	return &PageService{
		db:        db,
		pages:     pages,
		sections:  sections,
		revisions: revisions,
		spaces:    spaces,
		tags:      tags,
		cache:     c,
		renderer:  NewRenderer(),
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
		locks:     newPageLocks(),
	}
}

// withTx runs fn inside a single transaction. With no pool wired (mocked
// repositories) fn runs against the default querier.
func (s *PageService) withTx(ctx context.Context, fn func(q data.Querier) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return data.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(tx)
	})
}

// q is the querier for reads outside a transaction.
func (s *PageService) q() data.Querier {
	return s.db
}

// CreatePage handles the creation of a new wiki page: the page row, its
// sections, its tag links and revision number 1 commit as one unit. An
// initial revision is always recorded, even for an empty page.
func (s *PageService) CreatePage(ctx context.Context, in CreatePageInput) (*data.Page, error) {
	// Validate before any persistence mutation.
	if err := ValidateSections(in.Sections); err != nil {
		return nil, err
	}

	ordered := orderedSections(in.Sections)
	content := ""
	if in.Content != nil {
		content = s.sanitizer.Sanitize(*in.Content)
	} else if len(ordered) > 0 {
		content = ProjectText(ordered)
	}

	page := &data.Page{
		SpaceID:   in.SpaceID,
		Slug:      in.Slug,
		Title:     in.Title,
		Content:   content,
		CreatedBy: in.CreatedBy,
	}

	err := s.withTx(ctx, func(q data.Querier) error {
		exists, err := s.spaces.Exists(ctx, q, in.SpaceID)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("space", in.SpaceID)
		}

		taken, err := s.pages.SlugExists(ctx, q, in.SpaceID, in.Slug)
		if err != nil {
			return err
		}
		if taken {
			return &ConflictError{Resource: "page", Reason: fmt.Sprintf("slug '%s' already exists in space %d", in.Slug, in.SpaceID)}
		}

		if err := s.pages.Create(ctx, q, page); err != nil {
			return s.classify("create page", err)
		}
		if len(ordered) > 0 {
			if err := s.sections.Replace(ctx, q, page.ID, sectionRows(ordered)); err != nil {
				return s.classify("replace sections", err)
			}
		}
		if len(in.TagIDs) > 0 {
			if err := s.applyTags(ctx, q, page.ID, in.TagIDs); err != nil {
				return err
			}
		}

		rev := &data.Revision{
			PageID:         page.ID,
			RevisionNumber: 1,
			Title:          page.Title,
			Content:        page.Content,
			EditorID:       in.CreatedBy,
		}
		if err := s.revisions.Insert(ctx, q, rev); err != nil {
			return s.classify("create initial revision", err)
		}

		return s.loadRelations(ctx, q, page)
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// GetPage retrieves a single page with its sections and tags.
func (s *PageService) GetPage(ctx context.Context, id int64) (*data.Page, error) {
	page, err := s.pages.GetByID(ctx, s.q(), id)
	if err != nil {
		return nil, s.asNotFound("page", id, err)
	}
	if err := s.loadRelations(ctx, s.q(), page); err != nil {
		return nil, err
	}
	return page, nil
}

// GetPageBySlug retrieves a single page by its space and slug.
func (s *PageService) GetPageBySlug(ctx context.Context, spaceID int64, slug string) (*data.Page, error) {
	page, err := s.pages.GetBySpaceAndSlug(ctx, s.q(), spaceID, slug)
	if err != nil {
		return nil, s.asNotFound("page", slug, err)
	}
	if err := s.loadRelations(ctx, s.q(), page); err != nil {
		return nil, err
	}
	return page, nil
}

// ListPages retrieves pages matching the filter.
func (s *PageService) ListPages(ctx context.Context, filter data.PageFilter) ([]*data.Page, error) {
	return s.pages.List(ctx, s.q(), filter)
}

// UpdatePage handles the logic for updating an existing page. Title,
// content, sections, tag links and the revision all succeed together or not
// at all. A new revision is appended only when content changed AND an editor
// identity was supplied: callers that omit updated_by get the edit applied
// with no history recorded.
func (s *PageService) UpdatePage(ctx context.Context, id int64, in UpdatePageInput) (*data.Page, error) {
	// Validate before any persistence mutation.
	if in.Sections != nil {
		if err := ValidateSections(*in.Sections); err != nil {
			return nil, err
		}
	}

	// Serializes the revision sequencer's read-max-then-insert for this
	// page; held for the whole transaction.
	s.locks.lock(id)
	defer s.locks.unlock(id)

	var page *data.Page
	err := s.withTx(ctx, func(q data.Querier) error {
		var err error
		page, err = s.pages.GetByID(ctx, q, id)
		if err != nil {
			return s.asNotFound("page", id, err)
		}

		prevTitle, prevContent := page.Title, page.Content
		sectionsReplaced := false

		if in.TagIDs != nil {
			if err := s.applyTags(ctx, q, page.ID, *in.TagIDs); err != nil {
				return err
			}
		}

		if in.Sections != nil {
			ordered := orderedSections(*in.Sections)
			if err := s.sections.Replace(ctx, q, page.ID, sectionRows(ordered)); err != nil {
				return s.classify("replace sections", err)
			}
			sectionsReplaced = true
			// Recompute the fallback only when the caller left content
			// unset; explicit content always wins.
			if in.Content == nil {
				page.Content = ProjectText(ordered)
			}
		}

		if in.Title != nil {
			page.Title = *in.Title
		}
		if in.Content != nil {
			page.Content = s.sanitizer.Sanitize(*in.Content)
		}
		if in.IsDeleted != nil {
			page.IsDeleted = *in.IsDeleted
		}
		if in.UpdatedBy != nil {
			page.UpdatedBy = in.UpdatedBy
		}

		if err := s.pages.Update(ctx, q, page); err != nil {
			return s.classify("update page", err)
		}

		contentChanged := sectionsReplaced || page.Title != prevTitle || page.Content != prevContent
		if contentChanged && in.UpdatedBy != nil {
			next, err := s.revisions.NextNumber(ctx, q, page.ID)
			if err != nil {
				return err
			}
			rev := &data.Revision{
				PageID:         page.ID,
				RevisionNumber: next,
				Title:          page.Title,
				Content:        page.Content,
				EditorID:       *in.UpdatedBy,
			}
			if err := s.revisions.Insert(ctx, q, rev); err != nil {
				return s.classify("append revision", err)
			}
		}

		return s.loadRelations(ctx, q, page)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRenderCache(id)
	return page, nil
}

// DeletePage removes a page. Soft delete (the default) keeps sections and
// revisions and only hides the page from listings; hard delete destroys the
// page and cascades to its children, irreversibly.
func (s *PageService) DeletePage(ctx context.Context, id int64, hard bool) error {
	s.locks.lock(id)
	defer s.locks.unlock(id)

	err := s.withTx(ctx, func(q data.Querier) error {
		if hard {
			if err := s.pages.HardDelete(ctx, q, id); err != nil {
				return s.asNotFound("page", id, err)
			}
			return nil
		}
		if err := s.pages.SoftDelete(ctx, q, id); err != nil {
			return s.asNotFound("page", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateRenderCache(id)
	return nil
}

// ListRevisions retrieves a page's revision history, newest first.
func (s *PageService) ListRevisions(ctx context.Context, pageID int64) ([]*data.Revision, error) {
	if _, err := s.pages.GetByID(ctx, s.q(), pageID); err != nil {
		return nil, s.asNotFound("page", pageID, err)
	}
	return s.revisions.ListByPage(ctx, s.q(), pageID)
}

// GetRevision retrieves one revision of a page by its number.
func (s *PageService) GetRevision(ctx context.Context, pageID int64, number int) (*data.Revision, error) {
	rev, err := s.revisions.GetByNumber(ctx, s.q(), pageID, number)
	if err != nil {
		return nil, s.asNotFound("revision", fmt.Sprintf("%d/%d", pageID, number), err)
	}
	return rev, nil
}

// RenderPageHTML renders a page's sections to sanitized HTML, falling back
// to the page's plain-text content as markdown when it has no sections.
// Results are cached until the page changes.
func (s *PageService) RenderPageHTML(ctx context.Context, pageID int64) (string, error) {
	key := renderCacheKey(pageID)
	if s.cache != nil {
		if cached, err := s.cache.Get(key); err == nil && cached != nil {
			return string(cached), nil
		}
	}

	page, err := s.pages.GetByID(ctx, s.q(), pageID)
	if err != nil {
		return "", s.asNotFound("page", pageID, err)
	}
	rows, err := s.sections.ListByPage(ctx, s.q(), pageID)
	if err != nil {
		return "", err
	}

	var rendered string
	if len(rows) > 0 {
		rendered, err = s.renderer.RenderSections(sectionInputs(rows))
	} else {
		rendered, err = s.renderer.markdown(page.Content)
	}
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(key, []byte(rendered), renderCacheTTL); err != nil {
			s.log.Error(err, "Failed to cache rendered page")
		}
	}
	return rendered, nil
}

// PageMarkup reconstructs a page's block markup from its stored sections.
func (s *PageService) PageMarkup(ctx context.Context, pageID int64) (string, error) {
	if _, err := s.pages.GetByID(ctx, s.q(), pageID); err != nil {
		return "", s.asNotFound("page", pageID, err)
	}
	rows, err := s.sections.ListByPage(ctx, s.q(), pageID)
	if err != nil {
		return "", err
	}
	return SectionsToMarkup(sectionInputs(rows)), nil
}

// applyTags verifies every tag id exists, then swaps the page's link set.
func (s *PageService) applyTags(ctx context.Context, q data.Querier, pageID int64, tagIDs []int64) error {
	tags, err := s.tags.GetByIDs(ctx, q, tagIDs)
	if err != nil {
		return err
	}
	found := make(map[int64]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	for _, id := range tagIDs {
		if !found[id] {
			return notFound("tag", id)
		}
	}
	if err := s.tags.ReplacePageTags(ctx, q, pageID, tagIDs); err != nil {
		return s.classify("replace page tags", err)
	}
	return nil
}

// loadRelations fills in a page's sections and tags.
func (s *PageService) loadRelations(ctx context.Context, q data.Querier, page *data.Page) error {
	sections, err := s.sections.ListByPage(ctx, q, page.ID)
	if err != nil {
		return err
	}
	page.Sections = sections
	tags, err := s.tags.ListByPage(ctx, q, page.ID)
	if err != nil {
		return err
	}
	page.Tags = tags
	return nil
}

// classify translates storage sentinels into the service error taxonomy. A
// uniqueness violation that slipped past the checks above means a race lost
// to a concurrent writer: retryable conflict. Anything else from storage is
// an integrity failure, logged in full and opaque to the caller.
func (s *PageService) classify(op string, err error) error {
	if errors.Is(err, data.ErrDuplicate) {
		return &ConflictError{Resource: op, Reason: err.Error()}
	}
	if errors.Is(err, data.ErrNotFound) {
		return err
	}
	s.log.Error(err, "Storage failure during "+op)
	return &IntegrityError{Op: op, Err: err}
}

// asNotFound maps the storage not-found sentinel to the client-facing error.
func (s *PageService) asNotFound(resource string, key interface{}, err error) error {
	if errors.Is(err, data.ErrNotFound) {
		return notFound(resource, key)
	}
	return err
}

func (s *PageService) invalidateRenderCache(pageID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(renderCacheKey(pageID)); err != nil {
		s.log.Error(err, "Failed to invalidate render cache")
	}
}

func renderCacheKey(pageID int64) string {
	return fmt.Sprintf("page:html:%d", pageID)
}
