package handler

import (
	"net/http"

	appmiddleware "go-wiki-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router.
func NewRouter(pageHandler *PageHandler, revisionHandler *RevisionHandler,
	spaceHandler *SpaceHandler, tagHandler *TagHandler,
	errorMiddleware func(appmiddleware.AppHandler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.Identity())

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/pages", errorMiddleware(pageHandler.createHandler))
		r.Method(http.MethodGet, "/pages", errorMiddleware(pageHandler.listHandler))
		r.Method(http.MethodPost, "/pages/parse-markup", errorMiddleware(pageHandler.parseMarkupHandler))
		r.Method(http.MethodGet, "/pages/{pageID}", errorMiddleware(pageHandler.getHandler))
		r.Method(http.MethodPatch, "/pages/{pageID}", errorMiddleware(pageHandler.updateHandler))
		r.Method(http.MethodDelete, "/pages/{pageID}", errorMiddleware(pageHandler.deleteHandler))
		r.Method(http.MethodGet, "/pages/{pageID}/html", errorMiddleware(pageHandler.renderHandler))
		r.Method(http.MethodGet, "/pages/{pageID}/markup", errorMiddleware(pageHandler.markupHandler))
		r.Method(http.MethodGet, "/pages/{pageID}/revisions", errorMiddleware(revisionHandler.listHandler))
		r.Method(http.MethodGet, "/pages/{pageID}/revisions/{number}", errorMiddleware(revisionHandler.getHandler))

		r.Method(http.MethodPost, "/spaces", errorMiddleware(spaceHandler.createHandler))
		r.Method(http.MethodGet, "/spaces", errorMiddleware(spaceHandler.listHandler))
		r.Method(http.MethodGet, "/spaces/{spaceID}", errorMiddleware(spaceHandler.getHandler))
		r.Method(http.MethodGet, "/spaces/{spaceID}/pages/{slug}", errorMiddleware(pageHandler.getBySlugHandler))

		r.Method(http.MethodPost, "/tags", errorMiddleware(tagHandler.createHandler))
		r.Method(http.MethodGet, "/tags", errorMiddleware(tagHandler.listHandler))
	})

	return r
}
