package handler

import (
	"net/http"
	"strconv"

	"go-wiki-backend/internal/data"
	"go-wiki-backend/internal/logger"
	"go-wiki-backend/internal/middleware"
	"go-wiki-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

// RevisionHandler serves a page's immutable revision history.
type RevisionHandler struct {
	pageService service.PageServicer
	log         logger.Logger
}

// NewRevisionHandler creates a new RevisionHandler.
func NewRevisionHandler(ps service.PageServicer, log logger.Logger) *RevisionHandler {
	return &RevisionHandler{
		pageService: ps,
		log:         log,
	}
}

// listHandler retrieves all revisions for a page, newest first.
func (h *RevisionHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pageID, appErr := pathID(r, "pageID")
	if appErr != nil {
		return appErr
	}
	revisions, err := h.pageService.ListRevisions(r.Context(), pageID)
	if err != nil {
		return serviceError(err, "Failed to list revisions")
	}
	if revisions == nil {
		revisions = []*data.Revision{}
	}
	return respondJSON(w, http.StatusOK, revisions)
}

// getHandler retrieves one revision of a page by its number.
func (h *RevisionHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	pageID, appErr := pathID(r, "pageID")
	if appErr != nil {
		return appErr
	}
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < 1 {
		return badRequest(err, "Invalid revision number")
	}
	revision, svcErr := h.pageService.GetRevision(r.Context(), pageID, number)
	if svcErr != nil {
		return serviceError(svcErr, "Failed to retrieve revision")
	}
	return respondJSON(w, http.StatusOK, revision)
}
