package room

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/api/middleware"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/logger"
	"github.com/mkondratev/housing-assistant/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	design DesignUsecase
}

func NewHandler(design DesignUsecase) *Handler {
	return &Handler{design: design}
}

// GetRoom handles GET /rooms/{room_id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetRoom")

	view, err := h.design.GetRoomView(ctx, middleware.UserID(ctx), chi.URLParam(r, "room_id"))
	if err != nil {
		response.Problem(w, err)
		return
	}

	response.Success(w, view)
}

// Chat handles POST /rooms/{room_id}/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RoomChat")

	var req entity.ChatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.design.ChatTurn(ctx, middleware.UserID(ctx), chi.URLParam(r, "room_id"), &req)
	if err != nil {
		ctxzap.Warn(ctx, "room chat turn failed", zap.Error(err))
		response.Problem(w, err)
		return
	}

	response.Success(w, resp)
}
