package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"quiz-folio/cmd/seed_initial_data/internal/seedmodels"
	"quiz-folio/internal/config"
	"quiz-folio/internal/database"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/logger"
	"quiz-folio/internal/repository"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "config/seed_data/initial_questions.json"

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "path to the JSON seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var seedCategories []seedmodels.SeedCategory
	if err := json.Unmarshal(byteValue, &seedCategories); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("categories_loaded", len(seedCategories)))

	txManager := repository.NewTransactionManagerAdapter(db)
	questionRepo := repository.NewSQLXQuestionRepository(db)

	for _, sc := range seedCategories {
		err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			return seedCategoryData(txCtx, questionRepo, log, sc)
		})
		if err != nil {
			log.Error("Error seeding category, transaction rolled back", zap.String("category", sc.Name), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.")
}

// seedCategoryData stores every question of one category as APPROVED.
func seedCategoryData(ctx context.Context, repo domain.QuestionRepository, log *zap.Logger, seedCat seedmodels.SeedCategory) error {
	category, err := domain.ParseCategory(seedCat.Name)
	if err != nil {
		return err
	}
	log.Info("Processing category", zap.String("name", string(category)), zap.Int("questions", len(seedCat.Questions)))

	for _, sq := range seedCat.Questions {
		q, err := toDomainQuestion(category, sq)
		if err != nil {
			return fmt.Errorf("invalid seed question %q: %w", firstN(sq.Statement, 30), err)
		}
		if err := repo.SaveQuestion(ctx, q); err != nil {
			return fmt.Errorf("failed to save question %q: %w", firstN(sq.Statement, 30), err)
		}
		log.Debug("Seeded question", zap.String("id", q.ID), zap.String("statement_start", firstN(q.Statement, 30)))
	}
	return nil
}

func toDomainQuestion(category domain.Category, sq seedmodels.SeedQuestion) (*domain.Question, error) {
	if len(sq.Options) != domain.OptionCount {
		return nil, fmt.Errorf("expected %d options, got %d", domain.OptionCount, len(sq.Options))
	}
	difficulty, err := domain.ParseDifficulty(sq.Difficulty)
	if err != nil {
		return nil, err
	}
	q := &domain.Question{
		Statement:     sq.Statement,
		OptionA:       sq.Options[0],
		OptionB:       sq.Options[1],
		OptionC:       sq.Options[2],
		OptionD:       sq.Options[3],
		Answer:        sq.Answer,
		Difficulty:    difficulty,
		Category:      category,
		ApprovalLevel: domain.ApprovalApproved,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}
