package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	_ "github.com/spivot-ai/spivot-backend/cmd/api/docs"
	"github.com/spivot-ai/spivot-backend/internal/agents"
	"github.com/spivot-ai/spivot-backend/internal/core/analytics"
	"github.com/spivot-ai/spivot-backend/internal/core/auth"
	"github.com/spivot-ai/spivot-backend/internal/core/export"
	"github.com/spivot-ai/spivot-backend/internal/core/extract"
	"github.com/spivot-ai/spivot-backend/internal/core/jobs"
	"github.com/spivot-ai/spivot-backend/internal/core/llm"
	"github.com/spivot-ai/spivot-backend/internal/core/metrics"
	"github.com/spivot-ai/spivot-backend/internal/core/storage"
	"github.com/spivot-ai/spivot-backend/internal/handlers"
	"github.com/spivot-ai/spivot-backend/internal/repositories"
	"github.com/spivot-ai/spivot-backend/internal/services"
	"github.com/spivot-ai/spivot-backend/internal/shared/config"
	"github.com/spivot-ai/spivot-backend/internal/shared/database"
	"github.com/spivot-ai/spivot-backend/internal/shared/logx"
)

// @title Spivot API
// @version 1.0
// @description Business dashboard backend: cashflow and inventory metrics plus AI document extraction
// @license.name MIT
// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg := config.LoadConfig()
	logx.Init(cfg.Env)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	metrics.Init()

	// Repositories
	userRepo := repositories.NewUserRepo(db.GORM)
	transactionRepo := repositories.NewTransactionRepo(db.GORM)
	inventoryRepo := repositories.NewInventoryRepo(db.GORM)
	documentRepo := repositories.NewDocumentRepo(db.GORM)
	agentLogRepo := repositories.NewAgentLogRepo(db.GORM)

	// Agents
	treasurer := agents.NewTreasurer()
	quartermaster := agents.NewQuartermaster()
	underwriter := agents.NewUnderwriter()

	// Extraction pipeline
	llmProvider, err := llm.NewProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build LLM provider")
	}
	recognizer := extract.NewOCRSpaceRecognizer(cfg.OCRSpaceKey)
	extractor := extract.NewService(extract.NewLLMExtractor(recognizer, llmProvider))
	log.Info().Str("extractor", extractor.GetProviderName()).Msg("Extraction pipeline ready")

	storageProvider, err := storage.NewProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build storage provider")
	}

	queue := jobs.NewQueue(db.GORM)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, jwtService)
	cashflowService := services.NewCashflowService(transactionRepo, treasurer, analytics.NewAnalytics(db.GORM))
	inventoryService := services.NewInventoryService(inventoryRepo, quartermaster)
	documentService := services.NewDocumentService(documentRepo, storageProvider, queue, extractor)
	dashboardService := services.NewDashboardService(transactionRepo, inventoryRepo, agentLogRepo, treasurer, quartermaster, underwriter)

	// Background extraction workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerConfig := jobs.DefaultWorkerConfig()
	workerConfig.Concurrency = cfg.WorkerConcurrency
	worker := jobs.NewWorker(queue, workerConfig)
	worker.RegisterHandler(services.NewExtractionHandler(documentService))
	worker.Start(ctx)

	// Scheduled agent sweep and job cleanup
	runner := services.NewAgentRunner(userRepo, transactionRepo, inventoryRepo, agentLogRepo, treasurer, quartermaster)
	scheduler := cron.New()
	if cfg.AgentRunSchedule != "" {
		if _, err := scheduler.AddFunc(cfg.AgentRunSchedule, runner.RunAll); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.AgentRunSchedule).Msg("Invalid agent run schedule")
		}
		log.Info().Str("schedule", cfg.AgentRunSchedule).Msg("Agent sweep scheduled")
	}
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		deleted, err := queue.DeleteOld(context.Background(), 7*24*time.Hour)
		if err != nil {
			log.Error().Err(err).Msg("Job cleanup failed")
			return
		}
		if deleted > 0 {
			log.Info().Int64("deleted", deleted).Msg("Removed finished job rows")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule job cleanup")
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: storage.MaxFileSize + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(metrics.Middleware())

	if cfg.StorageProvider == "local" {
		app.Static("/uploads", cfg.UploadDir)
	}

	handlers.Register(app, &handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Cashflow:  handlers.NewCashflowHandler(cashflowService),
		Inventory: handlers.NewInventoryHandler(inventoryService),
		Document:  handlers.NewDocumentHandler(documentService),
		Export:    handlers.NewExportHandler(export.NewService(), transactionRepo, inventoryRepo),
	}, jwtService)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down")
		cancel()
		worker.Wait()
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Msg("API listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
