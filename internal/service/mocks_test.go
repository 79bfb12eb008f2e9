package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/logger"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = logger.Sync()
	os.Exit(code)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListQuestions(ctx context.Context, level *domain.ApprovalLevel) ([]*domain.Question, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetRandomQuestions(ctx context.Context, n int) ([]*domain.Question, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) UpdateApprovalLevel(ctx context.Context, id string, level domain.ApprovalLevel) (bool, error) {
	args := m.Called(ctx, id, level)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionRepository) GetAnswer(ctx context.Context, id string) (*int, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

func (m *MockQuestionRepository) GetAnswers(ctx context.Context, ids []string) (map[string]int, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// --- MockSubmissionRepository ---
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) SaveSubmission(ctx context.Context, submission *domain.QuizSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetTopPerformers(ctx context.Context, n int) ([]*domain.QuizSubmission, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSubmission), args.Error(1)
}

// --- MockHRContactRepository ---
type MockHRContactRepository struct {
	mock.Mock
}

func (m *MockHRContactRepository) Create(ctx context.Context, contact *domain.HRContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockHRContactRepository) Update(ctx context.Context, contact *domain.HRContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockHRContactRepository) GetByID(ctx context.Context, id string) (*domain.HRContact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HRContact), args.Error(1)
}

func (m *MockHRContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHRContactRepository) Search(ctx context.Context, filter domain.HRContactFilter) ([]*domain.HRContact, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.HRContact), args.Int(1), args.Error(2)
}

func (m *MockHRContactRepository) IncrementSendCount(ctx context.Context, id string, jobURL string, sentAt time.Time) error {
	args := m.Called(ctx, id, jobURL, sentAt)
	return args.Error(0)
}

func (m *MockHRContactRepository) ListSendHistory(ctx context.Context, id string) ([]domain.MailSendInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MailSendInfo), args.Error(1)
}

// --- MockContactQueryRepository ---
type MockContactQueryRepository struct {
	mock.Mock
}

func (m *MockContactQueryRepository) Save(ctx context.Context, query *domain.ContactQuery) error {
	args := m.Called(ctx, query)
	return args.Error(0)
}

func (m *MockContactQueryRepository) List(ctx context.Context, offset, limit int) ([]*domain.ContactQuery, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ContactQuery), args.Int(1), args.Error(2)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) HGet(ctx context.Context, key, field string) (string, error) {
	args := m.Called(ctx, key, field)
	return args.String(0), args.Error(1)
}

func (m *MockCache) HSet(ctx context.Context, key string, field string, value string) error {
	args := m.Called(ctx, key, field, value)
	return args.Error(0)
}

func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	args := m.Called(ctx, key, expiration)
	return args.Error(0)
}

// --- MockEmailSender ---
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockEmailSender) Name() string {
	return "mock"
}

// --- MockResumeStore ---
type MockResumeStore struct {
	mock.Mock
}

func (m *MockResumeStore) Find(ctx context.Context, key string) (*domain.Attachment, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

// --- MockQuestionGenerator ---
type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) GenerateQuestions(ctx context.Context, category domain.Category, count int) ([]*domain.Question, error) {
	args := m.Called(ctx, category, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

// --- MockResumeMailer ---
type MockResumeMailer struct {
	mock.Mock
}

func (m *MockResumeMailer) SendResume(ctx context.Context, contact *domain.HRContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

// --- MockLeaderboardService ---
type MockLeaderboardService struct {
	mock.Mock
	LeaderboardService
}

func (m *MockLeaderboardService) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

// inlineDispatcher runs jobs synchronously on Submit and records them.
type inlineDispatcher struct {
	mu      sync.Mutex
	kinds   []string
	results []error
	full    bool
}

func (d *inlineDispatcher) Submit(job MailJob) (string, <-chan MailResult, error) {
	if d.full {
		return "", nil, domain.NewMailQueueFullError()
	}
	err := job.Run(context.Background())

	d.mu.Lock()
	d.kinds = append(d.kinds, job.Kind)
	d.results = append(d.results, err)
	id := "job-" + string(rune('a'+len(d.kinds)-1))
	d.mu.Unlock()

	ch := make(chan MailResult, 1)
	ch <- MailResult{JobID: id, Err: err}
	close(ch)
	return id, ch, nil
}

func (d *inlineDispatcher) Shutdown(ctx context.Context) error {
	return nil
}
