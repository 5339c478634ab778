package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-wiki-backend/internal/middleware"
	"go-wiki-backend/internal/service"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, v interface{}) *middleware.AppError {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

// badRequest builds a client-fault AppError with the given message.
func badRequest(err error, message string) *middleware.AppError {
	return &middleware.AppError{Error: err, Message: message, Code: http.StatusBadRequest}
}

// serviceError maps the service error taxonomy onto HTTP status codes:
// structural validation and markup errors are client faults naming the
// offending field, not-found is 404, conflicts are retryable 409s, and
// everything else is opaque to the caller.
func serviceError(err error, fallback string) *middleware.AppError {
	var validationErr *service.ValidationError
	var markupErr *service.MarkupError
	var notFoundErr *service.NotFoundError
	var conflictErr *service.ConflictError

	switch {
	case errors.As(err, &validationErr):
		return &middleware.AppError{Error: err, Message: validationErr.Error(), Code: http.StatusUnprocessableEntity}
	case errors.As(err, &markupErr):
		return &middleware.AppError{Error: err, Message: markupErr.Error(), Code: http.StatusBadRequest}
	case errors.As(err, &notFoundErr):
		return &middleware.AppError{Error: err, Message: notFoundErr.Error(), Code: http.StatusNotFound}
	case errors.As(err, &conflictErr):
		return &middleware.AppError{Error: err, Message: conflictErr.Error(), Code: http.StatusConflict}
	}
	return &middleware.AppError{Error: err, Message: fallback, Code: http.StatusInternalServerError}
}
