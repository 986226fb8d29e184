package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
	})

	// private routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)

		r.Get("/api/userworkspaces", h.listUserWorkspaces)
		r.Post("/api/userworkspaces", h.createUserWorkspace)
		r.Put("/api/userworkspaces/{id}", h.updateUserWorkspace)
		r.Delete("/api/userworkspaces/{id}", h.deleteUserWorkspace)

		r.Get("/api/workspaces", h.listWorkspaces)
		r.Post("/api/workspaces", h.createWorkspace)
		r.Put("/api/workspaces/{id}", h.updateWorkspace)
		r.Delete("/api/workspaces/{id}", h.deleteWorkspace)

		r.Get("/api/notes", h.listNotes)
		r.Post("/api/notes", h.createNote)
		r.Get("/api/notes/{id}", h.getNote)
		r.Put("/api/notes/{id}", h.updateNote)
		r.Delete("/api/notes/{id}", h.deleteNote)
		r.Patch("/api/notes/{id}/content", h.patchNoteContent)

		r.Get("/api/storage", h.listStorage)
		r.Post("/api/storage/presigned-url", h.authorizeUpload)
		r.Post("/api/storage/confirm", h.confirmUpload)
		r.Delete("/api/storage", h.deleteObject)
	})

	return router
}
