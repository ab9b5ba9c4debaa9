package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/extractor"
	"github.com/mkondratev/housing-assistant/internal/pkg/validator"
	"go.uber.org/zap"
)

// ConfirmRooms processes one room-confirmation turn: a conversational reply,
// an add/remove delta applied to the stored list, and - on an explicit "yes"
// from the user or a "confirmed" in the reply - the transition of every room
// to confirmed with its design transcript seeded.
func (uc *SetupUsecase) ConfirmRooms(
	ctx context.Context,
	userID, projectID string,
	req *entity.ChatTurnRequest,
) (*entity.ChatTurnResponse, error) {
	if err := validator.ValidateChatTurn(req, false); err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.GetForUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	rooms, err := uc.roomRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	currentRooms := roomNames(rooms)

	if req.Message != "" {
		if err := uc.setupChatRepo.Append(ctx, projectID, entity.SenderUser, req.Message); err != nil {
			return nil, fmt.Errorf("persist user message: %w", err)
		}
	}

	history, err := uc.setupChatRepo.ListRecent(ctx, projectID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("load setup chat: %w", err)
	}

	reply := confirmFallback
	contents := historyContents(roomListInstruction(project.Name, currentRooms), history)
	if generated, genErr := uc.generator.Generate(ctx, contents, conversationConfig); genErr != nil {
		ctxzap.Warn(ctx, "room confirmation reply failed", zap.Error(genErr))
	} else {
		reply = generated
	}

	if req.Message != "" {
		if changed := uc.applyRoomDelta(ctx, projectID, req.Message); changed {
			// The list moved under the conversation; regenerate the reply
			// against the updated state.
			updated, listErr := uc.roomRepo.ListByProject(ctx, projectID)
			if listErr != nil {
				ctxzap.Warn(ctx, "reload rooms failed", zap.Error(listErr))
			} else {
				instruction := updatedRoomsInstruction(project.Name, currentRooms, roomNames(updated))
				contents = historyContents(instruction, history)
				if regenerated, genErr := uc.generator.Generate(ctx, contents, conversationConfig); genErr != nil {
					ctxzap.Warn(ctx, "updated room reply failed", zap.Error(genErr))
				} else {
					reply = regenerated
				}
			}
		}
	}

	if isRoomListConfirmed(req.Message, reply) {
		if err := uc.roomRepo.ConfirmAll(ctx, projectID); err != nil {
			ctxzap.Error(ctx, "room confirmation failed", zap.Error(err))
		} else {
			uc.seedRoomQuestions(ctx, projectID)
			ctxzap.Info(ctx, "room list confirmed", zap.String("project_id", projectID))
		}
	}

	if err := uc.setupChatRepo.Append(ctx, projectID, entity.SenderAssistant, reply); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	return &entity.ChatTurnResponse{Message: reply}, nil
}

// isRoomListConfirmed applies the dual confirmation heuristic: a leading
// affirmative from the user, or the assistant declaring the list confirmed.
func isRoomListConfirmed(userMessage, reply string) bool {
	return strings.HasPrefix(strings.ToLower(userMessage), "yes") ||
		strings.Contains(strings.ToLower(reply), "confirmed")
}

// applyRoomDelta extracts {add, remove} from the message and applies it.
// Reports whether the stored list changed.
func (uc *SetupUsecase) applyRoomDelta(ctx context.Context, projectID, userMessage string) bool {
	var delta entity.RoomListDelta
	if err := extractor.Extract(ctx, uc.generator, roomDeltaPrompt(userMessage), &delta); err != nil {
		ctxzap.Warn(ctx, "room delta extraction failed", zap.Error(err))
		return false
	}

	if len(delta.Add) == 0 && len(delta.Remove) == 0 {
		return false
	}

	floor, err := uc.floorRepo.GetOrCreateFirst(ctx, projectID)
	if err != nil {
		ctxzap.Warn(ctx, "resolve floor failed", zap.Error(err))
		return false
	}

	changed := false

	for _, name := range delta.Remove {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if err := uc.roomRepo.DeleteByName(ctx, floor.ID, name); err != nil {
			ctxzap.Warn(ctx, "remove room failed", zap.String("room_name", name), zap.Error(err))
			continue
		}
		changed = true
	}

	for _, name := range delta.Add {
		if strings.TrimSpace(name) == "" {
			continue
		}
		inserted, err := uc.roomRepo.CreateIfAbsent(ctx, entity.Room{
			ID:          uuid.New().String(),
			FloorID:     floor.ID,
			Name:        name,
			DesignPhase: entity.DesignPhaseCollecting,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			ctxzap.Warn(ctx, "add room failed", zap.String("room_name", name), zap.Error(err))
			continue
		}
		changed = changed || inserted
	}

	return changed
}
