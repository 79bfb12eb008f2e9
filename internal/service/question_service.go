package service

import (
	"context"
	"strings"

	"quiz-folio/internal/cache"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/logger"
	"quiz-folio/internal/validation"

	"go.uber.org/zap"
)

// QuestionService drives the admin question workflow
type QuestionService interface {
	// ListQuestions returns every question when levelFilter is empty.
	ListQuestions(ctx context.Context, levelFilter string) (*dto.QuestionListResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id string, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	// DiscardQuestion retires a question by moving it to DISCARD. Questions are never removed.
	DiscardQuestion(ctx context.Context, id string) error
	ChangeApprovalLevel(ctx context.Context, id string, req *dto.ChangeApprovalRequest) (*dto.ChangeApprovalResponse, error)
	GenerateDrafts(ctx context.Context, req *dto.GenerateQuestionsRequest) (*dto.QuestionListResponse, error)
}

type questionService struct {
	repo      domain.QuestionRepository
	cache     domain.Cache
	generator domain.QuestionGenerator
	validator *validation.Validator
}

// NewQuestionService creates a new QuestionService. cache and generator may be nil.
func NewQuestionService(repo domain.QuestionRepository, cache domain.Cache, generator domain.QuestionGenerator) QuestionService {
	return &questionService{
		repo:      repo,
		cache:     cache,
		generator: generator,
		validator: validation.NewValidator(),
	}
}

func (s *questionService) ListQuestions(ctx context.Context, levelFilter string) (*dto.QuestionListResponse, error) {
	var level *domain.ApprovalLevel
	if strings.TrimSpace(levelFilter) != "" {
		parsed, err := domain.ParseApprovalLevel(levelFilter)
		if err != nil {
			return nil, err
		}
		level = &parsed
	}

	questions, err := s.repo.ListQuestions(ctx, level)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list questions", err)
	}
	return toQuestionListResponse(questions), nil
}

func (s *questionService) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	q, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toQuestionResponse(q)
	return &resp, nil
}

func (s *questionService) getExisting(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.repo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question", err)
	}
	if q == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return q, nil
}

// CreateQuestion stores a question as NEW for review.
func (s *questionService) CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	q, err := questionFromRequest(req)
	if err != nil {
		return nil, err
	}
	q.ApprovalLevel = domain.ApprovalNew
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveQuestion(ctx, q); err != nil {
		return nil, domain.NewInternalError("Failed to save question", err)
	}
	logger.Get().Info("Question created", zap.String("questionID", q.ID), zap.String("category", string(q.Category)))

	resp := toQuestionResponse(q)
	return &resp, nil
}

// UpdateQuestion overwrites the question content. A question being edited goes back to NEW.
func (s *questionService) UpdateQuestion(ctx context.Context, id string, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	existing, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	q, err := questionFromRequest(req)
	if err != nil {
		return nil, err
	}
	q.ID = existing.ID
	q.CreatedAt = existing.CreatedAt
	q.ApprovalLevel = existing.ApprovalLevel
	if q.ApprovalLevel == domain.ApprovalEdit {
		q.ApprovalLevel = domain.ApprovalNew
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateQuestion(ctx, q); err != nil {
		return nil, asDomainError(err, "Failed to update question")
	}
	if existing.ApprovalLevel == domain.ApprovalApproved {
		s.invalidatePool(ctx)
	}

	resp := toQuestionResponse(q)
	return &resp, nil
}

func (s *questionService) DiscardQuestion(ctx context.Context, id string) error {
	updated, err := s.repo.UpdateApprovalLevel(ctx, id, domain.ApprovalDiscard)
	if err != nil {
		return domain.NewInternalError("Failed to discard question", err)
	}
	if !updated {
		return domain.NewQuestionNotFoundError(id)
	}
	s.invalidatePool(ctx)
	logger.Get().Info("Question discarded", zap.String("questionID", id))
	return nil
}

// ChangeApprovalLevel moves a question to any level and tells the admin UI where to go next.
func (s *questionService) ChangeApprovalLevel(ctx context.Context, id string, req *dto.ChangeApprovalRequest) (*dto.ChangeApprovalResponse, error) {
	level, err := domain.ParseApprovalLevel(req.ApprovalLevel)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateApprovalLevel(ctx, id, level)
	if err != nil {
		return nil, domain.NewInternalError("Failed to change approval level", err)
	}
	if !updated {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	s.invalidatePool(ctx)

	q, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Question approval level changed",
		zap.String("questionID", id),
		zap.String("approvalLevel", level.String()))

	return &dto.ChangeApprovalResponse{
		Question: toQuestionResponse(q),
		Redirect: domain.AdminRedirect(id, level, req.CurrentView),
	}, nil
}

// GenerateDrafts asks the LLM for questions and stores them as NEW.
func (s *questionService) GenerateDrafts(ctx context.Context, req *dto.GenerateQuestionsRequest) (*dto.QuestionListResponse, error) {
	if errs := s.validator.ValidateGenerateRequest(req); len(errs) > 0 {
		return nil, errs
	}
	if s.generator == nil {
		return nil, domain.NewQuestionGenerationError(errQuestionGeneratorDisabled)
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	saved, err := generateAndSave(ctx, s.generator, s.repo, category, req.Count)
	if err != nil {
		return nil, err
	}
	return toQuestionListResponse(saved), nil
}

func (s *questionService) invalidatePool(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.QuestionPoolKey()); err != nil {
		logger.Get().Warn("Failed to invalidate question pool", zap.Error(err))
	}
}

func questionFromRequest(req *dto.QuestionRequest) (*domain.Question, error) {
	if req.Answer == nil {
		return nil, domain.NewInvalidInputError("answer can't be null or empty")
	}
	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	return &domain.Question{
		Statement:  strings.TrimSpace(req.Statement),
		OptionA:    strings.TrimSpace(req.OptionA),
		OptionB:    strings.TrimSpace(req.OptionB),
		OptionC:    strings.TrimSpace(req.OptionC),
		OptionD:    strings.TrimSpace(req.OptionD),
		Answer:     *req.Answer,
		Difficulty: difficulty,
		Category:   category,
	}, nil
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:            q.ID,
		Statement:     q.Statement,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		Answer:        q.Answer,
		Difficulty:    string(q.Difficulty),
		Category:      string(q.Category),
		ApprovalLevel: q.ApprovalLevel.String(),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func toQuestionListResponse(questions []*domain.Question) *dto.QuestionListResponse {
	resp := &dto.QuestionListResponse{Questions: make([]dto.QuestionResponse, 0, len(questions))}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(q))
	}
	resp.Count = len(resp.Questions)
	return resp
}
