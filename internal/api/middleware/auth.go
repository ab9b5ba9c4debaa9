package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/pkg/logger"
	"github.com/mkondratev/housing-assistant/internal/pkg/response"
	"github.com/mkondratev/housing-assistant/internal/pkg/token"
	"go.uber.org/zap"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth verifies the Bearer token and puts the authenticated user ID into the
// request context. Missing or invalid credentials end the request with 401.
func Auth(tokens *token.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			raw := header
			if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
				raw = raw[7:]
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				ctxzap.Debug(r.Context(), "token verification failed", zap.Error(err))
				response.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = logger.AddFields(ctx, zap.String("user_id", userID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user ID set by Auth. The empty string
// means the request never passed the middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
