package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	authapi "github.com/mkondratev/housing-assistant/internal/api/auth"
	"github.com/mkondratev/housing-assistant/internal/api/docs"
	"github.com/mkondratev/housing-assistant/internal/api/middleware"
	projectapi "github.com/mkondratev/housing-assistant/internal/api/project"
	roomapi "github.com/mkondratev/housing-assistant/internal/api/room"
	"github.com/mkondratev/housing-assistant/internal/pkg/token"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	authHandler *authapi.Handler,
	projectHandler *projectapi.Handler,
	roomHandler *roomapi.Handler,
	tokens *token.Manager,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	authapi.RegisterRoutes(r, authHandler, tokens)
	projectapi.RegisterRoutes(r, projectHandler, tokens)
	roomapi.RegisterRoutes(r, roomHandler, tokens)

	return r
}
