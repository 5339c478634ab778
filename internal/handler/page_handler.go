package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-wiki-backend/internal/data"
	"go-wiki-backend/internal/logger"
	"go-wiki-backend/internal/middleware"
	"go-wiki-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

// PageHandler holds the dependencies for the page handlers.
type PageHandler struct {
	pageService service.PageServicer
	log         logger.Logger
}

// NewPageHandler creates a new PageHandler with the given dependencies.
func NewPageHandler(ps service.PageServicer, log logger.Logger) *PageHandler {
	return &PageHandler{
		pageService: ps,
		log:         log,
	}
}

type createPageRequest struct {
	SpaceID   int64                  `json:"space_id"`
	Slug      string                 `json:"slug"`
	Title     string                 `json:"title"`
	Content   *string                `json:"content"`
	CreatedBy int64                  `json:"created_by"`
	TagIDs    []int64                `json:"tag_ids"`
	Sections  []service.SectionInput `json:"sections"`
}

type updatePageRequest struct {
	Title     *string                 `json:"title"`
	Content   *string                 `json:"content"`
	IsDeleted *bool                   `json:"is_deleted"`
	UpdatedBy *int64                  `json:"updated_by"`
	TagIDs    *[]int64                `json:"tag_ids"`
	Sections  *[]service.SectionInput `json:"sections"`
}

// createHandler creates a new page, its sections and its first revision.
func (h *PageHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req createPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err, "Invalid request body")
	}
	if req.SpaceID == 0 || req.Slug == "" || req.Title == "" {
		return badRequest(nil, "space_id, slug and title are required")
	}

	// The creator comes from the body or, failing that, from the verified
	// identity the gateway attached to the request.
	createdBy := req.CreatedBy
	if createdBy == 0 {
		createdBy = middleware.GetUserInfo(r.Context()).ID
	}
	if createdBy == 0 {
		return badRequest(nil, "created_by is required")
	}

	page, err := h.pageService.CreatePage(r.Context(), service.CreatePageInput{
		SpaceID:   req.SpaceID,
		CreatedBy: createdBy,
		Slug:      req.Slug,
		Title:     req.Title,
		Content:   req.Content,
		Sections:  req.Sections,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		return serviceError(err, "Failed to create page")
	}
	return respondJSON(w, http.StatusCreated, page)
}

// getHandler retrieves a page by its id, with sections and tags.
func (h *PageHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "pageID")
	if appErr != nil {
		return appErr
	}
	page, err := h.pageService.GetPage(r.Context(), id)
	if err != nil {
		return serviceError(err, "Failed to retrieve page")
	}
	return respondJSON(w, http.StatusOK, page)
}

// getBySlugHandler retrieves a page by its space and slug.
func (h *PageHandler) getBySlugHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	spaceID, appErr := pathID(r, "spaceID")
	if appErr != nil {
		return appErr
	}
	slug := chi.URLParam(r, "slug")
	page, err := h.pageService.GetPageBySlug(r.Context(), spaceID, slug)
	if err != nil {
		return serviceError(err, "Failed to retrieve page")
	}
	return respondJSON(w, http.StatusOK, page)
}

// listHandler lists pages, soft-deleted ones excluded unless asked for.
func (h *PageHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	filter := data.PageFilter{Limit: 100}
	query := r.URL.Query()
	if raw := query.Get("space_id"); raw != "" {
		spaceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(err, "Invalid space_id")
		}
		filter.SpaceID = &spaceID
	}
	filter.IncludeDeleted = query.Get("include_deleted") == "true"
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return badRequest(err, "Invalid limit")
		}
		filter.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return badRequest(err, "Invalid offset")
		}
		filter.Offset = offset
	}

	pages, err := h.pageService.ListPages(r.Context(), filter)
	if err != nil {
		return serviceError(err, "Failed to list pages")
	}
	if pages == nil {
		pages = []*data.Page{}
	}
	return respondJSON(w, http.StatusOK, pages)
}

// updateHandler applies a partial update: title, content, sections, tags,
// soft-delete flag. A revision is recorded only when content changed and the
// request named an editor.
func (h *PageHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "pageID")
	if appErr != nil {
		return appErr
	}
	var req updatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err, "Invalid request body")
	}

	updatedBy := req.UpdatedBy
	if updatedBy == nil {
		if userID := middleware.GetUserInfo(r.Context()).ID; userID != 0 {
			updatedBy = &userID
		}
	}

	page, err := h.pageService.UpdatePage(r.Context(), id, service.UpdatePageInput{
		Title:     req.Title,
		Content:   req.Content,
		IsDeleted: req.IsDeleted,
		UpdatedBy: updatedBy,
		TagIDs:    req.TagIDs,
		Sections:  req.Sections,
	})
	if err != nil {
		return serviceError(err, "Failed to update page")
	}
	return respondJSON(w, http.StatusOK, page)
}

// deleteHandler soft-deletes a page by default; ?hard=true destroys it and
// its history permanently.
func (h *PageHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "pageID")
	if appErr != nil {
		return appErr
	}
	hard := r.URL.Query().Get("hard") == "true"
	if err := h.pageService.DeletePage(r.Context(), id, hard); err != nil {
		return serviceError(err, "Failed to delete page")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// renderHandler returns the page's sections rendered to sanitized HTML.
func (h *PageHandler) renderHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "pageID")
	if appErr != nil {
		return appErr
	}
	rendered, err := h.pageService.RenderPageHTML(r.Context(), id)
	if err != nil {
		return serviceError(err, "Failed to render page")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(rendered)); err != nil {
		h.log.Error(err, "Failed to write rendered page")
	}
	return nil
}

// markupHandler returns the page's sections as editable block markup.
func (h *PageHandler) markupHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "pageID")
	if appErr != nil {
		return appErr
	}
	markup, err := h.pageService.PageMarkup(r.Context(), id)
	if err != nil {
		return serviceError(err, "Failed to build page markup")
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(markup)); err != nil {
		h.log.Error(err, "Failed to write page markup")
	}
	return nil
}

type parseMarkupRequest struct {
	Markup string `json:"markup"`
}

// parseMarkupHandler converts block markup into validated section inputs
// without persisting anything, for editor previews.
func (h *PageHandler) parseMarkupHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req parseMarkupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err, "Invalid request body")
	}
	sections, err := service.ParseSectionMarkup(req.Markup)
	if err != nil {
		return serviceError(err, "Failed to parse markup")
	}
	if err := service.ValidateSections(sections); err != nil {
		return serviceError(err, "Invalid sections")
	}
	if sections == nil {
		sections = []service.SectionInput{}
	}
	return respondJSON(w, http.StatusOK, map[string]interface{}{"sections": sections})
}

// pathID parses an integer URL parameter.
func pathID(r *http.Request, name string) (int64, *middleware.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(err, "Invalid "+name)
	}
	return id, nil
}
