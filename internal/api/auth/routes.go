package auth

import (
	"github.com/go-chi/chi/v5"
	"github.com/mkondratev/housing-assistant/internal/api/middleware"
	"github.com/mkondratev/housing-assistant/internal/pkg/token"
)

// RegisterRoutes registers auth routes. Registration and login are public;
// the profile endpoint requires a valid token.
func RegisterRoutes(r chi.Router, h *Handler, tokens *token.Manager) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))
			r.Get("/me", h.Me)
		})
	})
}
