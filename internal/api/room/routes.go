package room

import (
	"github.com/go-chi/chi/v5"
	"github.com/mkondratev/housing-assistant/internal/api/middleware"
	"github.com/mkondratev/housing-assistant/internal/pkg/token"
)

// RegisterRoutes registers room design routes, all behind authentication.
func RegisterRoutes(r chi.Router, h *Handler, tokens *token.Manager) {
	r.Route("/rooms/{room_id}", func(r chi.Router) {
		r.Use(middleware.Auth(tokens))

		r.Get("/", h.GetRoom)
		r.Post("/chat", h.Chat)
	})
}
