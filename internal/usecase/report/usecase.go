package report

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/formatter"
	"github.com/mkondratev/housing-assistant/internal/repository"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// ReportUsecase aggregates the stored facts of a project, produces the
// narrative summary and renders it as a downloadable document. The generated
// text is cached per project for a short TTL so switching formats does not
// re-run the generative call.
type ReportUsecase struct {
	projectRepo     repository.ProjectRepository
	roomRepo        repository.RoomRepository
	houseDetailRepo repository.HouseDetailRepository
	roomDetailRepo  repository.RoomDetailRepository
	outerAreaRepo   repository.OuterAreaRepository
	generator       Generator
	formats         *formatter.Factory
	summaries       *cache.Cache
	logger          *zap.Logger
}

func NewUsecase(
	projectRepo repository.ProjectRepository,
	roomRepo repository.RoomRepository,
	houseDetailRepo repository.HouseDetailRepository,
	roomDetailRepo repository.RoomDetailRepository,
	outerAreaRepo repository.OuterAreaRepository,
	generator Generator,
	formats *formatter.Factory,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ReportUsecase {
	return &ReportUsecase{
		projectRepo:     projectRepo,
		roomRepo:        roomRepo,
		houseDetailRepo: houseDetailRepo,
		roomDetailRepo:  roomDetailRepo,
		outerAreaRepo:   outerAreaRepo,
		generator:       generator,
		formats:         formats,
		summaries:       cache.New(cacheTTL, 2*cacheTTL),
		logger:          logger,
	}
}

// GenerateReport produces the project report in the requested format.
// Unlike the conversational endpoints there is no fallback text here: a
// generative failure surfaces as entity.ErrReportFailed.
func (uc *ReportUsecase) GenerateReport(
	ctx context.Context,
	userID, projectID string,
	format entity.ReportFormat,
) (*entity.ReportFile, error) {
	project, err := uc.projectRepo.GetForUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	body, err := uc.summaryText(ctx, project)
	if err != nil {
		ctxzap.Error(ctx, "report summary generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", entity.ErrReportFailed, err)
	}

	fm, err := uc.formats.Create(format)
	if err != nil {
		return nil, err
	}

	data, err := fm.Format(formatter.Report{
		Title:       fmt.Sprintf("Summary Report: %s", project.Name),
		GeneratedAt: time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	ctxzap.Info(ctx, "report generated",
		zap.String("project_id", projectID),
		zap.String("format", string(format)),
		zap.Int("size_bytes", len(data)),
	)

	return &entity.ReportFile{
		Filename:    fmt.Sprintf("%s_summary_report%s", project.Name, fm.FileExtension()),
		ContentType: fm.ContentType(),
		Data:        data,
	}, nil
}

// summaryText returns the cached narrative or generates a fresh one.
func (uc *ReportUsecase) summaryText(ctx context.Context, project *entity.Project) (string, error) {
	if cached, ok := uc.summaries.Get(project.ID); ok {
		ctxzap.Debug(ctx, "report summary served from cache", zap.String("project_id", project.ID))
		return cached.(string), nil
	}

	houseDetails, err := uc.houseDetailRepo.MapByProject(ctx, project.ID)
	if err != nil {
		return "", fmt.Errorf("load house details: %w", err)
	}

	outerAreas, err := uc.outerAreaRepo.MapByProject(ctx, project.ID)
	if err != nil {
		return "", fmt.Errorf("load outer areas: %w", err)
	}

	rooms, err := uc.roomRepo.ListConfirmed(ctx, project.ID)
	if err != nil {
		return "", fmt.Errorf("load rooms: %w", err)
	}

	roomDetails := make(map[string]map[string]string, len(rooms))
	for _, room := range rooms {
		details, detErr := uc.roomDetailRepo.MapByRoom(ctx, room.ID)
		if detErr != nil {
			return "", fmt.Errorf("load details for room %s: %w", room.ID, detErr)
		}
		roomDetails[room.Name] = details
	}

	prompt := summaryPrompt(project.Name, houseDetails, roomDetails, outerAreas)

	body, err := uc.generator.Generate(ctx,
		[]entity.GeminiContent{entity.TextContent("user", prompt)}, summaryConfig)
	if err != nil {
		return "", err
	}

	uc.summaries.SetDefault(project.ID, body)

	return body, nil
}
