package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-folio/internal/domain"

	"go.uber.org/zap"
)

var errQuestionGeneratorDisabled = errors.New("question generator is not configured")

// BatchService drafts questions for every category in one run.
type BatchService interface {
	// GenerateForAllCategories returns the number of drafts stored. A failing category does not stop the run.
	GenerateForAllCategories(ctx context.Context, perCategory int) (int, error)
}

type batchService struct {
	repo      domain.QuestionRepository
	generator domain.QuestionGenerator
	logger    *zap.Logger
}

// NewBatchService creates a new instance of batchService.
func NewBatchService(repo domain.QuestionRepository, generator domain.QuestionGenerator, logger *zap.Logger) BatchService {
	return &batchService{
		repo:      repo,
		generator: generator,
		logger:    logger,
	}
}

func (s *batchService) GenerateForAllCategories(ctx context.Context, perCategory int) (int, error) {
	if s.generator == nil {
		return 0, domain.NewQuestionGenerationError(errQuestionGeneratorDisabled)
	}
	s.logger.Info("Starting batch question generation", zap.Time("start_time", time.Now()), zap.Int("per_category", perCategory))

	total := 0
	var failed []domain.Category
	for _, category := range domain.AllCategories() {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		saved, err := generateAndSave(ctx, s.generator, s.repo, category, perCategory)
		if err != nil {
			s.logger.Error("Failed to generate questions for category", zap.String("category", string(category)), zap.Error(err))
			failed = append(failed, category)
			continue
		}
		total += len(saved)
		s.logger.Info("Stored question drafts", zap.String("category", string(category)), zap.Int("count", len(saved)))
	}

	s.logger.Info("Batch question generation finished", zap.Int("stored", total), zap.Int("failed_categories", len(failed)))
	if len(failed) == len(domain.AllCategories()) {
		return total, fmt.Errorf("question generation failed for every category")
	}
	return total, nil
}

// generateAndSave stores each generated draft as NEW.
func generateAndSave(ctx context.Context, generator domain.QuestionGenerator, repo domain.QuestionRepository, category domain.Category, count int) ([]*domain.Question, error) {
	drafts, err := generator.GenerateQuestions(ctx, category, count)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewQuestionGenerationError(err)
	}

	saved := make([]*domain.Question, 0, len(drafts))
	for _, q := range drafts {
		q.ApprovalLevel = domain.ApprovalNew
		q.Category = category
		if err := repo.SaveQuestion(ctx, q); err != nil {
			return saved, domain.NewInternalError("Failed to save generated question", err)
		}
		saved = append(saved, q)
	}
	return saved, nil
}
