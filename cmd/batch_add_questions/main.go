package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quiz-folio/internal/adapter/questiongen"
	"quiz-folio/internal/config"
	"quiz-folio/internal/database"
	"quiz-folio/internal/logger"
	"quiz-folio/internal/repository"
	"quiz-folio/internal/service"

	"go.uber.org/zap"
)

func main() {
	perCategory := flag.Int("per-category", 5, "number of question drafts to generate for each category")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}
	defer logger.Sync()

	logger.Get().Info("Batch process starting up...")

	if cfg.LLM.Server == "" {
		logger.Get().Fatal("LLM server is not configured.")
	}

	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		logger.Get().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	questionRepo := repository.NewSQLXQuestionRepository(db)

	generator, err := questiongen.NewOllamaQuestionGenerator(cfg.LLM)
	if err != nil {
		logger.Get().Fatal("Failed to initialize question generator", zap.Error(err))
	}
	logger.Get().Info("Initialized question generator.", zap.String("model", cfg.LLM.Model))

	batchSvc := service.NewBatchService(questionRepo, generator, logger.Get())

	// Ctrl+C stops after the category in flight.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stored, err := batchSvc.GenerateForAllCategories(ctx, *perCategory)
	if err != nil {
		logger.Get().Fatal("Batch process failed", zap.Int("stored", stored), zap.Error(err))
	}

	logger.Get().Info("Batch process completed successfully.", zap.Int("stored", stored))
}
