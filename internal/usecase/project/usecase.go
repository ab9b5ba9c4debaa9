package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/validator"
	"github.com/mkondratev/housing-assistant/internal/repository"
	"go.uber.org/zap"
)

// Every fresh project opens with the same setup question.
const welcomeMessage = "How many floors would you like for your dream house?"

// ProjectUsecase implements project lifecycle and the setup view aggregate
type ProjectUsecase struct {
	projectRepo     repository.ProjectRepository
	setupChatRepo   repository.SetupChatRepository
	houseDetailRepo repository.HouseDetailRepository
	outerAreaRepo   repository.OuterAreaRepository
	roomRepo        repository.RoomRepository
	logger          *zap.Logger
}

func NewUsecase(
	projectRepo repository.ProjectRepository,
	setupChatRepo repository.SetupChatRepository,
	houseDetailRepo repository.HouseDetailRepository,
	outerAreaRepo repository.OuterAreaRepository,
	roomRepo repository.RoomRepository,
	logger *zap.Logger,
) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo:     projectRepo,
		setupChatRepo:   setupChatRepo,
		houseDetailRepo: houseDetailRepo,
		outerAreaRepo:   outerAreaRepo,
		roomRepo:        roomRepo,
		logger:          logger,
	}
}

// CreateProject creates a project and seeds its setup transcript with the
// opening assistant question.
func (uc *ProjectUsecase) CreateProject(
	ctx context.Context,
	userID string,
	req *entity.CreateProjectRequest,
) (*entity.Project, error) {
	if err := validator.ValidateCreateProject(req); err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.Create(ctx, entity.Project{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.ProjectName,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if err := uc.setupChatRepo.Append(ctx, project.ID, entity.SenderAssistant, welcomeMessage); err != nil {
		return nil, fmt.Errorf("seed setup chat: %w", err)
	}

	ctxzap.Info(ctx, "project created",
		zap.String("project_id", project.ID),
		zap.String("project_name", project.Name),
	)

	return project, nil
}

func (uc *ProjectUsecase) ListProjects(ctx context.Context, userID string) ([]*entity.Project, error) {
	return uc.projectRepo.ListByUser(ctx, userID)
}

// GetSetupView assembles the project setup aggregate: transcript, collected
// house facts, outer areas and the current room list.
func (uc *ProjectUsecase) GetSetupView(ctx context.Context, userID, projectID string) (*entity.SetupView, error) {
	project, err := uc.projectRepo.GetForUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	history, err := uc.setupChatRepo.List(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load setup chat: %w", err)
	}

	details, err := uc.houseDetailRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load house details: %w", err)
	}

	areas, err := uc.outerAreaRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load outer areas: %w", err)
	}

	rooms, err := uc.roomRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}

	return &entity.SetupView{
		Project:      project,
		ChatHistory:  history,
		HouseDetails: details,
		OuterAreas:   areas,
		Rooms:        rooms,
	}, nil
}

// DeleteProject removes the project after an ownership check; the schema
// cascades the delete through floors, rooms, details and transcripts.
func (uc *ProjectUsecase) DeleteProject(ctx context.Context, userID, projectID string) error {
	if _, err := uc.projectRepo.GetForUser(ctx, projectID, userID); err != nil {
		return err
	}

	if err := uc.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	ctxzap.Info(ctx, "project deleted", zap.String("project_id", projectID))

	return nil
}
