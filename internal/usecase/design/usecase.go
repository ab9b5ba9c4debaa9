package design

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/extractor"
	"github.com/mkondratev/housing-assistant/internal/pkg/validator"
	"github.com/mkondratev/housing-assistant/internal/repository"
	"go.uber.org/zap"
)

// DesignUsecase drives the per-room design conversation. Each room walks an
// ordered attribute checklist; its durable phase moves COLLECTING ->
// CONFIRMING -> CONFIRMED, and the last transition happens exactly once.
type DesignUsecase struct {
	roomRepo       repository.RoomRepository
	roomChatRepo   repository.RoomChatRepository
	roomDetailRepo repository.RoomDetailRepository
	questionRepo   repository.DesignQuestionRepository
	generator      Generator
	logger         *zap.Logger
}

func NewUsecase(
	roomRepo repository.RoomRepository,
	roomChatRepo repository.RoomChatRepository,
	roomDetailRepo repository.RoomDetailRepository,
	questionRepo repository.DesignQuestionRepository,
	generator Generator,
	logger *zap.Logger,
) *DesignUsecase {
	return &DesignUsecase{
		roomRepo:       roomRepo,
		roomChatRepo:   roomChatRepo,
		roomDetailRepo: roomDetailRepo,
		questionRepo:   questionRepo,
		generator:      generator,
		logger:         logger,
	}
}

// ChatTurn processes one room design turn: persist the message, extract and
// store facts, then answer from whatever state the room is now in. Facts are
// kept even when the reply falls back.
func (uc *DesignUsecase) ChatTurn(
	ctx context.Context,
	userID, roomID string,
	req *entity.ChatTurnRequest,
) (*entity.ChatTurnResponse, error) {
	if err := validator.ValidateChatTurn(req, true); err != nil {
		return nil, err
	}

	room, err := uc.roomRepo.GetContextForUser(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.roomChatRepo.Append(ctx, roomID, entity.SenderUser, req.Message); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	uc.applyRoomFacts(ctx, room, req.Message)

	complete, err := uc.questionRepo.CompleteTypes(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("load design state: %w", err)
	}
	missing := missingDetails(complete)

	var reply string
	switch {
	case room.DesignPhase == entity.DesignPhaseConfirmed:
		reply = uc.completedReply(ctx, room)

	case len(missing) > 0:
		reply = uc.questionReply(ctx, room, missing[0])

	case room.DesignPhase == entity.DesignPhaseConfirming && isAffirmative(req.Message):
		if err := uc.roomRepo.SetDesignPhase(ctx, roomID, entity.DesignPhaseConfirmed); err != nil {
			return nil, fmt.Errorf("confirm design: %w", err)
		}
		room.DesignPhase = entity.DesignPhaseConfirmed
		ctxzap.Info(ctx, "room design confirmed", zap.String("room_id", roomID))
		reply = uc.completedReply(ctx, room)

	default:
		if room.DesignPhase == entity.DesignPhaseCollecting {
			if err := uc.roomRepo.SetDesignPhase(ctx, roomID, entity.DesignPhaseConfirming); err != nil {
				return nil, fmt.Errorf("mark design confirming: %w", err)
			}
			room.DesignPhase = entity.DesignPhaseConfirming
		}
		reply = uc.confirmReply(ctx, room)
	}

	if err := uc.roomChatRepo.Append(ctx, roomID, entity.SenderAssistant, reply); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	return &entity.ChatTurnResponse{Message: reply}, nil
}

// GetRoomView assembles the per-room aggregate: context, transcript, stored
// details and the project's confirmed rooms for navigation.
func (uc *DesignUsecase) GetRoomView(ctx context.Context, userID, roomID string) (*entity.RoomView, error) {
	room, err := uc.roomRepo.GetContextForUser(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}

	history, err := uc.roomChatRepo.List(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("load room chat: %w", err)
	}

	details, err := uc.roomDetailRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("load room details: %w", err)
	}

	siblings, err := uc.roomRepo.ListConfirmed(ctx, room.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("load confirmed rooms: %w", err)
	}

	return &entity.RoomView{
		Room:        room,
		ChatHistory: history,
		Details:     details,
		Siblings:    siblings,
	}, nil
}

// applyRoomFacts extracts design details from the message and records each
// not-yet-complete attribute as answered, plus the room detail itself.
func (uc *DesignUsecase) applyRoomFacts(ctx context.Context, room *entity.RoomContext, userMessage string) {
	var facts entity.RoomFacts
	if err := extractor.Extract(ctx, uc.generator, roomFactsPrompt(room.Name, userMessage), &facts); err != nil {
		ctxzap.Warn(ctx, "room fact extraction failed", zap.Error(err))
		return
	}

	for _, d := range facts.Details {
		if d.DetailType == "" || d.DetailValue == "" {
			continue
		}
		if err := uc.questionRepo.RecordAnswer(ctx, room.ID, d.DetailType, d.DetailValue); err != nil {
			ctxzap.Warn(ctx, "record design answer failed",
				zap.String("detail_type", d.DetailType), zap.Error(err))
			continue
		}
		if err := uc.roomDetailRepo.InsertIfAbsent(ctx, room.ID, d.DetailType, d.DetailValue); err != nil {
			ctxzap.Warn(ctx, "store room detail failed",
				zap.String("detail_type", d.DetailType), zap.Error(err))
		}
	}
}

func (uc *DesignUsecase) questionReply(ctx context.Context, room *entity.RoomContext, nextDetail string) string {
	answers, err := uc.completeAnswers(ctx, room.ID)
	if err != nil {
		ctxzap.Warn(ctx, "load prior answers failed", zap.Error(err))
		return questionFallback(room.Name, nextDetail)
	}

	reply, err := uc.generate(ctx, nextDetailInstruction(room, nextDetail, answers))
	if err != nil {
		ctxzap.Warn(ctx, "design question generation failed",
			zap.String("next_detail", nextDetail), zap.Error(err))
		return questionFallback(room.Name, nextDetail)
	}
	return reply
}

func (uc *DesignUsecase) confirmReply(ctx context.Context, room *entity.RoomContext) string {
	answers, err := uc.completeAnswers(ctx, room.ID)
	if err != nil {
		ctxzap.Warn(ctx, "load answers failed", zap.Error(err))
		return confirmFallback(room.Name)
	}

	reply, err := uc.generate(ctx, confirmInstruction(room, answers))
	if err != nil {
		ctxzap.Warn(ctx, "confirmation message generation failed", zap.Error(err))
		return confirmFallback(room.Name)
	}
	return reply
}

func (uc *DesignUsecase) completedReply(ctx context.Context, room *entity.RoomContext) string {
	nextRooms, err := uc.roomRepo.ListConfirmedExcept(ctx, room.ProjectID, room.ID)
	if err != nil {
		ctxzap.Warn(ctx, "load next rooms failed", zap.Error(err))
		return completedFallback(room.Name)
	}

	reply, err := uc.generate(ctx, completedInstruction(room, nextRooms))
	if err != nil {
		ctxzap.Warn(ctx, "completion message generation failed", zap.Error(err))
		return completedFallback(room.Name)
	}
	return reply
}

func (uc *DesignUsecase) generate(ctx context.Context, instruction string) (string, error) {
	return uc.generator.Generate(ctx,
		[]entity.GeminiContent{entity.TextContent("user", instruction)}, questionConfig)
}

// completeAnswers returns the answered attributes as a map.
func (uc *DesignUsecase) completeAnswers(ctx context.Context, roomID string) (map[string]string, error) {
	questions, err := uc.questionRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		if q.IsComplete && q.Answer != "" {
			answers[q.Type] = q.Answer
		}
	}
	return answers, nil
}

// missingDetails keeps the checklist order.
func missingDetails(complete map[string]bool) []string {
	missing := make([]string, 0, len(requiredDetails))
	for _, d := range requiredDetails {
		if !complete[d] {
			missing = append(missing, d)
		}
	}
	return missing
}

// isAffirmative recognizes an explicit design confirmation.
func isAffirmative(message string) bool {
	lowered := strings.ToLower(message)
	return strings.HasPrefix(lowered, "yes") || strings.Contains(lowered, "confirmed")
}
