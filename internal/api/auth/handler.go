package auth

import (
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/api/middleware"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/logger"
	"github.com/mkondratev/housing-assistant/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase AuthUsecase
}

func NewHandler(usecase AuthUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Register")

	var req entity.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.Register(ctx, &req)
	if err != nil {
		ctxzap.Warn(ctx, "registration failed", zap.Error(err))
		response.Problem(w, err)
		return
	}

	response.Created(w, resp)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Login")

	var req entity.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.Login(ctx, &req)
	if err != nil {
		ctxzap.Warn(ctx, "login failed", zap.Error(err))
		response.Problem(w, err)
		return
	}

	response.Success(w, resp)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Me")

	user, err := h.usecase.GetUser(ctx, middleware.UserID(ctx))
	if err != nil {
		response.Problem(w, err)
		return
	}

	response.Success(w, entity.UserDTO{ID: user.ID, Email: user.Email})
}
