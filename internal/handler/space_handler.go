package handler

import (
	"encoding/json"
	"net/http"

	"go-wiki-backend/internal/data"
	"go-wiki-backend/internal/logger"
	"go-wiki-backend/internal/middleware"
	"go-wiki-backend/internal/service"
)

// SpaceHandler serves the thin space surface the page engine sits on.
type SpaceHandler struct {
	spaceService service.SpaceServicer
	log          logger.Logger
}

// NewSpaceHandler creates a new SpaceHandler.
func NewSpaceHandler(ss service.SpaceServicer, log logger.Logger) *SpaceHandler {
	return &SpaceHandler{
		spaceService: ss,
		log:          log,
	}
}

type createSpaceRequest struct {
	WorkspaceID int64  `json:"workspace_id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   int64  `json:"created_by"`
}

func (h *SpaceHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req createSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest(err, "Invalid request body")
	}
	if req.WorkspaceID == 0 || req.Slug == "" || req.Name == "" {
		return badRequest(nil, "workspace_id, slug and name are required")
	}
	createdBy := req.CreatedBy
	if createdBy == 0 {
		createdBy = middleware.GetUserInfo(r.Context()).ID
	}
	if createdBy == 0 {
		return badRequest(nil, "created_by is required")
	}

	space, err := h.spaceService.CreateSpace(r.Context(), service.CreateSpaceInput{
		WorkspaceID: req.WorkspaceID,
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return serviceError(err, "Failed to create space")
	}
	return respondJSON(w, http.StatusCreated, space)
}

func (h *SpaceHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "spaceID")
	if appErr != nil {
		return appErr
	}
	space, err := h.spaceService.GetSpace(r.Context(), id)
	if err != nil {
		return serviceError(err, "Failed to retrieve space")
	}
	return respondJSON(w, http.StatusOK, space)
}

func (h *SpaceHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	spaces, err := h.spaceService.ListSpaces(r.Context())
	if err != nil {
		return serviceError(err, "Failed to list spaces")
	}
	if spaces == nil {
		spaces = []*data.Space{}
	}
	return respondJSON(w, http.StatusOK, spaces)
}
