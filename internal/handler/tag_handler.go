package handler

import (
	"encoding/json"
	"net/http"

	"go-wiki-backend/internal/data"
	"go-wiki-backend/internal/logger"
	"go-wiki-backend/internal/middleware"
	"go-wiki-backend/internal/service"
)

// TagHandler serves the tag collaborator surface.
type TagHandler struct {
	tagService service.TagServicer
	log        logger.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(ts service.TagServicer, log logger.Logger) *TagHandler {
	return &TagHandler{
		tagService: ts,
		log:        log,
	}
}

type createTagRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (h *TagHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err, "Invalid request body")
	}
	if req.Slug == "" || req.Name == "" {
		return badRequest(nil, "slug and name are required")
	}
	tag, err := h.tagService.CreateTag(r.Context(), req.Slug, req.Name)
	if err != nil {
		return serviceError(err, "Failed to create tag")
	}
	return respondJSON(w, http.StatusCreated, tag)
}

func (h *TagHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	tags, err := h.tagService.ListTags(r.Context())
	if err != nil {
		return serviceError(err, "Failed to list tags")
	}
	if tags == nil {
		tags = []*data.Tag{}
	}
	return respondJSON(w, http.StatusOK, tags)
}
