package project

import (
	"context"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

type ProjectUsecase interface {
	CreateProject(ctx context.Context, userID string, req *entity.CreateProjectRequest) (*entity.Project, error)
	ListProjects(ctx context.Context, userID string) ([]*entity.Project, error)
	GetSetupView(ctx context.Context, userID, projectID string) (*entity.SetupView, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
}

type SetupUsecase interface {
	ChatTurn(ctx context.Context, userID, projectID string, req *entity.ChatTurnRequest) (*entity.ChatTurnResponse, error)
	ConfirmRooms(ctx context.Context, userID, projectID string, req *entity.ChatTurnRequest) (*entity.ChatTurnResponse, error)
}

type ReportUsecase interface {
	GenerateReport(ctx context.Context, userID, projectID string, format entity.ReportFormat) (*entity.ReportFile, error)
}
