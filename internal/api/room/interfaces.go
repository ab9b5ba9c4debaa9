package room

import (
	"context"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

type DesignUsecase interface {
	ChatTurn(ctx context.Context, userID, roomID string, req *entity.ChatTurnRequest) (*entity.ChatTurnResponse, error)
	GetRoomView(ctx context.Context, userID, roomID string) (*entity.RoomView, error)
}
