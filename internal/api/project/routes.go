package project

import (
	"github.com/go-chi/chi/v5"
	"github.com/mkondratev/housing-assistant/internal/api/middleware"
	"github.com/mkondratev/housing-assistant/internal/pkg/token"
)

// RegisterRoutes registers project routes, all behind authentication.
func RegisterRoutes(r chi.Router, h *Handler, tokens *token.Manager) {
	r.Route("/projects", func(r chi.Router) {
		r.Use(middleware.Auth(tokens))

		r.Post("/", h.CreateProject)
		r.Get("/", h.ListProjects)

		r.Route("/{project_id}", func(r chi.Router) {
			r.Get("/", h.GetProject)
			r.Delete("/", h.DeleteProject)
			r.Post("/setup-chat", h.SetupChat)
			r.Post("/confirm-rooms", h.ConfirmRooms)
			r.Get("/report", h.Report)
		})
	})
}
