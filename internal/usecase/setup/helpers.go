package setup

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/extractor"
	"go.uber.org/zap"
)

// Mentioning one of these in a setup message records an outer area.
var outerAreaKeywords = []string{"parking", "garden", "balcony"}

// applyHouseFacts runs the extractor on the user message and upserts the
// returned facts. First write wins, extraction failure degrades to zero facts.
func (uc *SetupUsecase) applyHouseFacts(ctx context.Context, projectID, userMessage string) {
	var facts entity.HouseFacts
	if err := extractor.Extract(ctx, uc.generator, houseFactsPrompt(userMessage), &facts); err != nil {
		ctxzap.Warn(ctx, "house fact extraction failed", zap.Error(err))
		return
	}

	for _, d := range facts.HouseDetails {
		if d.DetailType == "" || d.DetailValue == "" {
			continue
		}
		if err := uc.houseDetailRepo.InsertIfAbsent(ctx, projectID, d.DetailType, d.DetailValue); err != nil {
			ctxzap.Warn(ctx, "store house detail failed",
				zap.String("detail_type", d.DetailType), zap.Error(err))
		}
	}

	if len(facts.Rooms) == 0 && len(facts.RoomDetails) == 0 {
		return
	}

	floor, err := uc.floorRepo.GetOrCreateFirst(ctx, projectID)
	if err != nil {
		ctxzap.Warn(ctx, "resolve floor failed", zap.Error(err))
		return
	}

	for _, name := range facts.Rooms {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, err := uc.roomRepo.CreateIfAbsent(ctx, entity.Room{
			ID:          uuid.New().String(),
			FloorID:     floor.ID,
			Name:        name,
			DesignPhase: entity.DesignPhaseCollecting,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			ctxzap.Warn(ctx, "store room failed", zap.String("room_name", name), zap.Error(err))
		}
	}

	if len(facts.RoomDetails) == 0 {
		return
	}

	rooms, err := uc.roomRepo.ListByProject(ctx, projectID)
	if err != nil {
		ctxzap.Warn(ctx, "list rooms failed", zap.Error(err))
		return
	}
	byName := make(map[string]string, len(rooms))
	for _, r := range rooms {
		byName[r.Name] = r.ID
	}

	for _, rd := range facts.RoomDetails {
		roomID, ok := byName[rd.RoomName]
		if !ok || rd.DetailType == "" || rd.DetailValue == "" {
			continue
		}
		if err := uc.roomDetailRepo.InsertIfAbsent(ctx, roomID, rd.DetailType, rd.DetailValue); err != nil {
			ctxzap.Warn(ctx, "store room detail failed",
				zap.String("room_name", rd.RoomName),
				zap.String("detail_type", rd.DetailType),
				zap.Error(err))
		}
	}
}

// recordOuterArea keyword-scans the message for outdoor features. The full
// message is kept as the description; one area per type per project.
func (uc *SetupUsecase) recordOuterArea(ctx context.Context, projectID, userMessage string) {
	lowered := strings.ToLower(userMessage)

	for _, keyword := range outerAreaKeywords {
		if !strings.Contains(lowered, keyword) {
			continue
		}
		if err := uc.outerAreaRepo.InsertIfAbsent(ctx, projectID, keyword, userMessage); err != nil {
			ctxzap.Warn(ctx, "store outer area failed",
				zap.String("area_type", keyword), zap.Error(err))
		}
	}
}

// seedRoomQuestions opens every room's design transcript with its vibe
// question, skipping rooms that already have an assistant message.
func (uc *SetupUsecase) seedRoomQuestions(ctx context.Context, projectID string) {
	rooms, err := uc.roomRepo.ListByProject(ctx, projectID)
	if err != nil {
		ctxzap.Warn(ctx, "list rooms for seeding failed", zap.Error(err))
		return
	}

	for _, room := range rooms {
		seeded, err := uc.roomChatRepo.HasAssistantMessage(ctx, room.ID)
		if err != nil {
			ctxzap.Warn(ctx, "check room transcript failed",
				zap.String("room_id", room.ID), zap.Error(err))
			continue
		}
		if seeded {
			continue
		}
		if err := uc.roomChatRepo.Append(ctx, room.ID, entity.SenderAssistant, seedQuestion(room.Name)); err != nil {
			ctxzap.Warn(ctx, "seed room question failed",
				zap.String("room_id", room.ID), zap.Error(err))
		}
	}
}

func roomNames(rooms []*entity.Room) []string {
	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, r.Name)
	}
	return names
}

// historyContents prepends the system instruction to the transcript window,
// mapped onto the wire roles.
func historyContents(instruction string, history []*entity.ChatMessage) []entity.GeminiContent {
	contents := make([]entity.GeminiContent, 0, len(history)+1)
	contents = append(contents, entity.TextContent("assistant", instruction))

	for _, msg := range history {
		contents = append(contents, entity.TextContent(string(msg.Sender), msg.Message))
	}

	return contents
}
