package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mkondratev/housing-assistant/internal/api"
	authapi "github.com/mkondratev/housing-assistant/internal/api/auth"
	projectapi "github.com/mkondratev/housing-assistant/internal/api/project"
	roomapi "github.com/mkondratev/housing-assistant/internal/api/room"
	"github.com/mkondratev/housing-assistant/internal/config"
	"github.com/mkondratev/housing-assistant/internal/integration/gemini"
	"github.com/mkondratev/housing-assistant/internal/pkg/formatter"
	"github.com/mkondratev/housing-assistant/internal/pkg/token"
	"github.com/mkondratev/housing-assistant/internal/repository"
	"github.com/mkondratev/housing-assistant/internal/usecase/auth"
	"github.com/mkondratev/housing-assistant/internal/usecase/design"
	"github.com/mkondratev/housing-assistant/internal/usecase/project"
	"github.com/mkondratev/housing-assistant/internal/usecase/report"
	"github.com/mkondratev/housing-assistant/internal/usecase/setup"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserPostgres(db)
	projectRepo := repository.NewProjectPostgres(db)
	floorRepo := repository.NewFloorPostgres(db)
	roomRepo := repository.NewRoomPostgres(db)
	setupChatRepo := repository.NewSetupChatPostgres(db)
	roomChatRepo := repository.NewRoomChatPostgres(db)
	houseDetailRepo := repository.NewHouseDetailPostgres(db)
	roomDetailRepo := repository.NewRoomDetailPostgres(db)
	outerAreaRepo := repository.NewOuterAreaPostgres(db)
	questionRepo := repository.NewDesignQuestionPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize the generative connector (with mock support)
	var generator setup.Generator
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the generative service")
		generator = gemini.NewMockConnector(logger)
	} else {
		logger.Info("Using real connector for the generative service")
		generator = gemini.NewConnector(cfg.GeminiCfg, logger)
	}

	tokens := token.NewManager(cfg.AuthCfg.JWTSecret, cfg.AuthCfg.TokenTTL)

	// Initialize use cases
	authUC := auth.NewUsecase(userRepo, tokens, logger)

	projectUC := project.NewUsecase(
		projectRepo,
		setupChatRepo,
		houseDetailRepo,
		outerAreaRepo,
		roomRepo,
		logger,
	)

	setupUC := setup.NewUsecase(
		projectRepo,
		floorRepo,
		roomRepo,
		setupChatRepo,
		roomChatRepo,
		houseDetailRepo,
		roomDetailRepo,
		outerAreaRepo,
		generator,
		logger,
	)

	designUC := design.NewUsecase(
		roomRepo,
		roomChatRepo,
		roomDetailRepo,
		questionRepo,
		generator,
		logger,
	)

	reportUC := report.NewUsecase(
		projectRepo,
		roomRepo,
		houseDetailRepo,
		roomDetailRepo,
		outerAreaRepo,
		generator,
		formatter.NewFactory(),
		cfg.ReportCacheTTL,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	authHandler := authapi.NewHandler(authUC)
	projectHandler := projectapi.NewHandler(projectUC, setupUC, reportUC)
	roomHandler := roomapi.NewHandler(designUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(authHandler, projectHandler, roomHandler, tokens, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
