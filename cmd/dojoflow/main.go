package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dojoflow/internal/api"
	"dojoflow/internal/api/handlers"
	"dojoflow/internal/dto"
	"dojoflow/internal/repository"
	"dojoflow/internal/service"
	"dojoflow/internal/tools"
	"dojoflow/pkg/config"
	"dojoflow/pkg/logger"
	"dojoflow/pkg/postgres"
	"dojoflow/pkg/twilio"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting dojoflow service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Bootstrap(ctx, db); err != nil {
		appLogger.Fatal("Failed to bootstrap schema", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	apptRepo := repository.NewAppointmentRepository(db, appLogger)
	interactionRepo := repository.NewInteractionRepository(db, appLogger)
	inventoryRepo := repository.NewInventoryRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)

	// External clients
	twilioClient := twilio.NewClient(&cfg.Twilio, appLogger)

	llmService, err := service.NewLLMService(ctx, cfg.Gemini, cfg.RAG.Dimension, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}

	// Initialize services
	crmService := service.NewCRMService(userRepo, appLogger)
	messagingService := service.NewMessagingService(twilioClient, interactionRepo, cfg.Twilio.FromNumber, appLogger)
	calendarService := service.NewCalendarService(apptRepo, cfg.Business, appLogger)
	ragService := service.NewRAGService(knowledgeRepo, llmService, cfg.RAG.TopK, cfg.RAG.SimilarityThreshold, cfg.RAG.IndexDelay, appLogger)
	inventoryService := service.NewInventoryService(inventoryRepo, appLogger)
	campaignService := service.NewCampaignService(crmService, calendarService, messagingService, cfg.Sweeps.RetentionDelay, cfg.Sweeps.ReminderDelay, appLogger)
	callConfigService := service.NewCallConfigService(crmService, cfg.ElevenLabs.VoiceID, appLogger)

	// Tool catalog
	registry := tools.NewRegistry(appLogger)
	registry.Register(tools.NewIdentifyUserTool(crmService))
	registry.Register(tools.NewCreateLeadTool(crmService))
	registry.Register(tools.NewCheckAvailabilityTool(calendarService))
	registry.Register(tools.NewBookAppointmentTool(calendarService, crmService, messagingService))
	registry.Register(tools.NewRAGQueryTool(ragService))
	registry.Register(tools.NewCheckStockTool(inventoryService))
	registry.Register(tools.NewLogInteractionTool(messagingService))

	conversationService := service.NewConversationService(crmService, messagingService, llmService, registry, appLogger)

	// Initialize handlers
	webhookHandler := handlers.NewWebhookHandler(conversationService, cfg.BaseURL, appLogger)
	voiceHandler := handlers.NewVoiceHandler(callConfigService, appLogger)
	toolHandler := handlers.NewToolHandler(registry, appLogger)
	flowHandler := handlers.NewFlowHandler(campaignService, ragService, appLogger)

	// Setup router
	app := api.SetupRouter(webhookHandler, voiceHandler, toolHandler, flowHandler)

	// Optional background reminder sweep
	if cfg.Sweeps.ReminderInterval > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			appLogger.Fatal("Failed to create scheduler", zap.Error(err))
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Sweeps.ReminderInterval),
			gocron.NewTask(func() {
				result, err := campaignService.AppointmentReminders(ctx, &dto.ReminderSweepRequest{})
				if err != nil {
					appLogger.Error("scheduled reminder sweep failed", zap.Error(err))
					return
				}
				appLogger.Info("scheduled reminder sweep done",
					zap.Int("sent", result.Sent),
					zap.Int("failed", result.Failed))
			}),
		)
		if err != nil {
			appLogger.Fatal("Failed to schedule reminder job", zap.Error(err))
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		appLogger.Info("Reminder job scheduled",
			zap.Duration("interval", cfg.Sweeps.ReminderInterval))
	}

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
