package setup

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/validator"
	"github.com/mkondratev/housing-assistant/internal/repository"
	"go.uber.org/zap"
)

// The model sees at most this many transcript turns per call.
const historyWindow = 20

// SetupUsecase drives the project setup conversation: the free-form
// house-detail chat, the room list confirmation and finalization.
// Generative failures never fail a turn; the user gets a fixed fallback and
// whatever facts were extracted are kept.
type SetupUsecase struct {
	projectRepo     repository.ProjectRepository
	floorRepo       repository.FloorRepository
	roomRepo        repository.RoomRepository
	setupChatRepo   repository.SetupChatRepository
	roomChatRepo    repository.RoomChatRepository
	houseDetailRepo repository.HouseDetailRepository
	roomDetailRepo  repository.RoomDetailRepository
	outerAreaRepo   repository.OuterAreaRepository
	generator       Generator
	logger          *zap.Logger
}

func NewUsecase(
	projectRepo repository.ProjectRepository,
	floorRepo repository.FloorRepository,
	roomRepo repository.RoomRepository,
	setupChatRepo repository.SetupChatRepository,
	roomChatRepo repository.RoomChatRepository,
	houseDetailRepo repository.HouseDetailRepository,
	roomDetailRepo repository.RoomDetailRepository,
	outerAreaRepo repository.OuterAreaRepository,
	generator Generator,
	logger *zap.Logger,
) *SetupUsecase {
	return &SetupUsecase{
		projectRepo:     projectRepo,
		floorRepo:       floorRepo,
		roomRepo:        roomRepo,
		setupChatRepo:   setupChatRepo,
		roomChatRepo:    roomChatRepo,
		houseDetailRepo: houseDetailRepo,
		roomDetailRepo:  roomDetailRepo,
		outerAreaRepo:   outerAreaRepo,
		generator:       generator,
		logger:          logger,
	}
}

// ChatTurn processes one setup conversation turn. The user message (when
// present) is persisted before any generative call, so a downstream failure
// never loses input.
func (uc *SetupUsecase) ChatTurn(
	ctx context.Context,
	userID, projectID string,
	req *entity.ChatTurnRequest,
) (*entity.ChatTurnResponse, error) {
	if err := validator.ValidateChatTurn(req, true); err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.GetForUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	if req.Message != "" {
		if err := uc.setupChatRepo.Append(ctx, projectID, entity.SenderUser, req.Message); err != nil {
			return nil, fmt.Errorf("persist user message: %w", err)
		}
	}

	var reply string
	switch req.Action {
	case entity.SetupActionOuterArea:
		reply = outerAreaQuestion
	case entity.SetupActionFinalize:
		reply = uc.finalize(ctx, project)
	default:
		reply = uc.converse(ctx, project, req.Message)
	}

	if err := uc.setupChatRepo.Append(ctx, projectID, entity.SenderAssistant, reply); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	return &entity.ChatTurnResponse{Message: reply}, nil
}

// converse generates the next setup question and runs fact extraction on the
// user message afterwards.
func (uc *SetupUsecase) converse(ctx context.Context, project *entity.Project, userMessage string) string {
	reply := setupFallback

	contents, err := uc.setupContents(ctx, project)
	if err != nil {
		ctxzap.Warn(ctx, "assemble setup context failed", zap.Error(err))
	} else if generated, genErr := uc.generator.Generate(ctx, contents, conversationConfig); genErr != nil {
		ctxzap.Warn(ctx, "setup reply generation failed", zap.Error(genErr))
	} else {
		reply = generated
	}

	if userMessage != "" {
		uc.applyHouseFacts(ctx, project.ID, userMessage)
		uc.recordOuterArea(ctx, project.ID, userMessage)
	}

	return reply
}

// setupContents builds the system instruction plus the recent transcript.
// The just-persisted user message is already part of the transcript.
func (uc *SetupUsecase) setupContents(ctx context.Context, project *entity.Project) ([]entity.GeminiContent, error) {
	history, err := uc.setupChatRepo.ListRecent(ctx, project.ID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("load setup chat: %w", err)
	}

	details, err := uc.houseDetailRepo.MapByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("load house details: %w", err)
	}

	rooms, err := uc.roomRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}

	instruction := setupInstruction(project.Name, details, roomNames(rooms))

	return historyContents(instruction, history), nil
}

// finalize produces the project summary, collapses all floors into one,
// confirms every room and seeds the per-room design transcripts. On
// generative failure nothing structural changes and the fixed apology is
// returned.
func (uc *SetupUsecase) finalize(ctx context.Context, project *entity.Project) string {
	houseDetails, err := uc.houseDetailRepo.MapByProject(ctx, project.ID)
	if err != nil {
		ctxzap.Warn(ctx, "load house details failed", zap.Error(err))
		return summaryFallback
	}

	outerAreas, err := uc.outerAreaRepo.MapByProject(ctx, project.ID)
	if err != nil {
		ctxzap.Warn(ctx, "load outer areas failed", zap.Error(err))
		return summaryFallback
	}

	rooms, err := uc.roomRepo.ListByProject(ctx, project.ID)
	if err != nil {
		ctxzap.Warn(ctx, "load rooms failed", zap.Error(err))
		return summaryFallback
	}

	roomDetails := make(map[string]map[string]string, len(rooms))
	for _, room := range rooms {
		details, detErr := uc.roomDetailRepo.MapByRoom(ctx, room.ID)
		if detErr != nil {
			ctxzap.Warn(ctx, "load room details failed",
				zap.String("room_id", room.ID), zap.Error(detErr))
			return summaryFallback
		}
		roomDetails[room.Name] = details
	}

	prompt := summaryPrompt(project.Name, houseDetails, roomDetails, outerAreas)

	summary, err := uc.generator.Generate(ctx,
		[]entity.GeminiContent{entity.TextContent("user", prompt)}, summaryConfig)
	if err != nil {
		ctxzap.Warn(ctx, "summary generation failed", zap.Error(err))
		return summaryFallback
	}

	if _, err := uc.floorRepo.Consolidate(ctx, project.ID); err != nil {
		ctxzap.Error(ctx, "floor consolidation failed", zap.Error(err))
		return summaryFallback
	}

	if err := uc.roomRepo.ConfirmAll(ctx, project.ID); err != nil {
		ctxzap.Error(ctx, "room confirmation failed", zap.Error(err))
		return summaryFallback
	}

	uc.seedRoomQuestions(ctx, project.ID)

	ctxzap.Info(ctx, "project setup finalized",
		zap.String("project_id", project.ID),
		zap.Int("room_count", len(rooms)),
	)

	return summary
}
