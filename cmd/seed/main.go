package main

import (
	"context"
	"log"
	"time"

	"dojoflow/internal/dto"
	"dojoflow/internal/models"
	"dojoflow/internal/repository"
	"dojoflow/internal/service"
	"dojoflow/pkg/config"
	"dojoflow/pkg/logger"
	"dojoflow/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds a development database: a few CRM records, Pro Shop items and an
// embedded knowledge base.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Bootstrap(ctx, db); err != nil {
		appLogger.Fatal("Failed to bootstrap schema", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	inventoryRepo := repository.NewInventoryRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)

	llmService, err := service.NewLLMService(ctx, cfg.Gemini, cfg.RAG.Dimension, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}

	appLogger.Info("Starting database seeding...")

	seedUsers(ctx, userRepo, appLogger)
	seedInventory(ctx, inventoryRepo, appLogger)
	seedKnowledge(ctx, knowledgeRepo, llmService, cfg, appLogger)

	appLogger.Info("Seeding complete")
}

func seedUsers(ctx context.Context, repo *repository.UserRepository, appLogger *zap.Logger) {
	now := time.Now()
	lastWeek := now.AddDate(0, 0, -7)
	lastMonth := now.AddDate(0, -1, 0)
	enrolled := now.AddDate(-1, 0, 0)

	users := []*models.User{
		{
			ID:                 uuid.New(),
			Phone:              "15551230001",
			Name:               "Marcus Silva",
			Email:              "marcus@example.com",
			Type:               models.UserTypeActiveStudent,
			Rank:               "blue belt",
			LastAttendanceDate: &lastWeek,
			PaymentStatus:      models.PaymentStatusCurrent,
			EnrollmentDate:     &enrolled,
			MembershipType:     "unlimited",
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		{
			ID:                 uuid.New(),
			Phone:              "15551230002",
			Name:               "Dana Reyes",
			Type:               models.UserTypeActiveStudent,
			Rank:               "white belt",
			LastAttendanceDate: &lastMonth,
			PaymentStatus:      models.PaymentStatusOverdue,
			EnrollmentDate:     &enrolled,
			MembershipType:     "basic",
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		{
			ID:                  uuid.New(),
			Phone:               "15551230003",
			Name:                "Jordan Park",
			Type:                models.UserTypeLead,
			Source:              models.LeadSourceWebsite,
			Interest:            "Kids Classes",
			QualificationStatus: models.QualificationUnqualified,
			CreatedAt:           now,
			UpdatedAt:           now,
		},
	}

	for _, u := range users {
		if existing, err := repo.GetByPhone(ctx, u.Phone); err == nil && existing != nil {
			continue
		}
		if err := repo.Create(ctx, u); err != nil {
			appLogger.Warn("seed user failed", zap.String("phone", u.Phone), zap.Error(err))
		}
	}
	appLogger.Info("Users seeded", zap.Int("count", len(users)))
}

func seedInventory(ctx context.Context, repo *repository.InventoryRepository, appLogger *zap.Logger) {
	items := []*models.InventoryItem{
		{
			ID:       uuid.New(),
			Name:     "Training Gi",
			Category: models.InventoryGi,
			Sizes:    []string{"A1", "A2", "A3", "A4"},
			Colors:   []string{"White", "Blue"},
			Stock: []models.StockVariant{
				{Size: "A1", Color: "White", Quantity: 5},
				{Size: "A2", Color: "White", Quantity: 8},
				{Size: "A2", Color: "Blue", Quantity: 3},
				{Size: "A3", Color: "White", Quantity: 6},
			},
			Price:             149.00,
			SKU:               "GI-TRN",
			LowStockThreshold: 5,
		},
		{
			ID:       uuid.New(),
			Name:     "Rashguard",
			Category: models.InventoryRashguard,
			Sizes:    []string{"S", "M", "L", "XL"},
			Colors:   []string{"Black"},
			Stock: []models.StockVariant{
				{Size: "M", Color: "Black", Quantity: 10},
				{Size: "L", Color: "Black", Quantity: 4},
			},
			Price:             45.00,
			SKU:               "RG-BLK",
			LowStockThreshold: 3,
		},
	}

	for _, item := range items {
		if err := repo.Create(ctx, item); err != nil {
			appLogger.Warn("seed item failed", zap.String("sku", item.SKU), zap.Error(err))
		}
	}
	appLogger.Info("Inventory seeded", zap.Int("count", len(items)))
}

func seedKnowledge(ctx context.Context, repo *repository.KnowledgeRepository, embedder service.Embedder, cfg *config.Config, appLogger *zap.Logger) {
	rag := service.NewRAGService(repo, embedder, cfg.RAG.TopK, cfg.RAG.SimilarityThreshold, cfg.RAG.IndexDelay, appLogger)

	docs := []*dto.IndexDocumentRequest{
		{
			Title:    "Membership freeze policy",
			Content:  "Membership freezes require 30 days written notice. A freeze can last between one and three months and pauses billing for the duration. Medical freezes with documentation can start immediately.",
			Category: models.KnowledgePolicy,
		},
		{
			Title:    "Adult program pricing",
			Content:  "The unlimited adult membership is $179 per month with no contract. The basic plan, two classes per week, is $129 per month. All new students get their first intro class free.",
			Category: models.KnowledgePricing,
		},
		{
			Title:    "Weekly class schedule",
			Content:  "Adult fundamentals runs Monday through Friday at 6:30 PM. Advanced classes are Tuesday and Thursday at 7:30 PM. Kids classes run Monday, Wednesday and Friday at 5:00 PM. Open mat is Saturday at noon.",
			Category: models.KnowledgeSchedule,
		},
		{
			Title:    "What to bring to your first class",
			Content:  "Wear comfortable athletic clothes; we provide a loaner gi for your first class. Bring water and arrive 15 minutes early to meet the instructor and sign the waiver.",
			Category: models.KnowledgeFAQ,
		},
	}

	result := rag.IndexDocuments(ctx, docs)
	appLogger.Info("Knowledge base seeded",
		zap.Int("indexed", result.Indexed),
		zap.Int("failed", result.Failed))
}
