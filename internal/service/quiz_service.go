package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"quiz-folio/internal/cache"
	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/logger"
	"quiz-folio/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-taking operations
type QuizService interface {
	GetQuiz(ctx context.Context) (*dto.QuizResponse, error)
	SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error)
}

type quizService struct {
	questions   domain.QuestionRepository
	submissions domain.SubmissionRepository
	cache       domain.Cache
	leaderboard LeaderboardService
	validator   *validation.Validator
	cfg         config.QuizConfig
}

// NewQuizService creates a new QuizService. cache and leaderboard may be nil.
func NewQuizService(
	questions domain.QuestionRepository,
	submissions domain.SubmissionRepository,
	cache domain.Cache,
	leaderboard LeaderboardService,
	cfg config.QuizConfig,
) QuizService {
	return &quizService{
		questions:   questions,
		submissions: submissions,
		cache:       cache,
		leaderboard: leaderboard,
		validator:   validation.NewValidator(),
		cfg:         cfg,
	}
}

func (s *quizService) questionsPerQuiz() int {
	if s.cfg.QuestionsPerQuiz > 0 {
		return s.cfg.QuestionsPerQuiz
	}
	return domain.QuestionsPerQuiz
}

// GetQuiz samples questions from the cached approved pool, or straight from the database without a cache.
func (s *quizService) GetQuiz(ctx context.Context) (*dto.QuizResponse, error) {
	n := s.questionsPerQuiz()

	var questions []*domain.Question
	if s.cache == nil {
		qs, err := s.questions.GetRandomQuestions(ctx, n)
		if err != nil {
			return nil, domain.NewInternalError("Failed to get quiz questions", err)
		}
		questions = qs
	} else {
		pool, err := s.questionPool(ctx)
		if err != nil {
			return nil, err
		}
		questions = sample(pool, n)
	}

	resp := &dto.QuizResponse{
		Questions:   make([]dto.QuizQuestion, 0, len(questions)),
		QuestionIDs: make([]string, 0, len(questions)),
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.QuizQuestion{
			ID:         q.ID,
			Statement:  q.Statement,
			Options:    q.Options(),
			Difficulty: string(q.Difficulty),
			Category:   string(q.Category),
		})
		resp.QuestionIDs = append(resp.QuestionIDs, q.ID)
	}
	return resp, nil
}

func (s *quizService) questionPool(ctx context.Context) ([]*domain.Question, error) {
	key := cache.QuestionPoolKey()

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var pool []*domain.Question
		errUnmarshal := json.Unmarshal([]byte(cached), &pool)
		if errUnmarshal == nil {
			return pool, nil
		}
		logger.Get().Warn("Failed to decode cached question pool, reloading", zap.String("key", key), zap.Error(errUnmarshal))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Question pool cache read failed", zap.String("key", key), zap.Error(err))
	}

	poolSize := s.cfg.QuestionPoolSize
	if poolSize < s.questionsPerQuiz() {
		poolSize = s.questionsPerQuiz()
	}
	pool, err := s.questions.GetRandomQuestions(ctx, poolSize)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load question pool", err)
	}

	if data, errMarshal := json.Marshal(pool); errMarshal == nil {
		if errSet := s.cache.Set(ctx, key, string(data), s.cfg.QuestionPoolTTL); errSet != nil {
			logger.Get().Warn("Failed to cache question pool", zap.String("key", key), zap.Error(errSet))
		}
	}
	return pool, nil
}

// sample returns up to n distinct questions in random order.
func sample(pool []*domain.Question, n int) []*domain.Question {
	shuffled := make([]*domain.Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// SubmitQuiz scores an answer sheet and records the submission.
func (s *quizService) SubmitQuiz(ctx context.Context, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if errs := s.validator.ValidateSubmitQuizRequest(req); len(errs) > 0 {
		return nil, errs
	}

	var opted []int
	if err := json.Unmarshal([]byte(req.UserOptedAnswers), &opted); err != nil {
		return nil, domain.NewInternalError("Failed to parse user opted answers", err)
	}
	var questionIDs []string
	if err := json.Unmarshal([]byte(req.QuestionIDs), &questionIDs); err != nil {
		return nil, domain.NewInternalError("Failed to parse question ids", err)
	}
	if len(opted) != len(questionIDs) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf(
			"answer count %d does not match question count %d", len(opted), len(questionIDs)))
	}
	if limit := s.questionsPerQuiz(); len(questionIDs) > limit {
		return nil, domain.NewInvalidInputError(fmt.Sprintf(
			"question count %d exceeds the quiz size %d", len(questionIDs), limit))
	}
	if dup := domain.FirstDuplicate(questionIDs); dup != "" {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("question %s is answered more than once", dup))
	}

	answers, err := s.questions.GetAnswers(ctx, questionIDs)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get answers", err)
	}
	score := domain.ScoreAnswers(answers, questionIDs, opted)

	submission := &domain.QuizSubmission{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Score:          score,
		TotalQuestions: len(questionIDs),
		SubmittedAt:    time.Now(),
	}
	if err := s.submissions.SaveSubmission(ctx, submission); err != nil {
		return nil, domain.NewInternalError("Failed to save submission", err)
	}

	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}

	logger.Get().Info("Quiz submitted",
		zap.String("submissionID", submission.ID),
		zap.Int("score", score),
		zap.Int("total", submission.TotalQuestions))

	return &dto.SubmitQuizResponse{
		SubmissionID: submission.ID,
		Name:         submission.Name,
		Score:        score,
		Total:        submission.TotalQuestions,
	}, nil
}

// CheckAnswer scores one answer. An unknown question scores 0.
func (s *quizService) CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error) {
	answer, err := s.questions.GetAnswer(ctx, req.QuestionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get answer", err)
	}

	resp := &dto.CheckAnswerResponse{QuestionID: req.QuestionID}
	if answer != nil && *answer == req.Opted {
		resp.Score = 1
	}
	return resp, nil
}
