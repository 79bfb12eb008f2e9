package domain

import (
	"context"
	"time"
)

// QuestionRepository persists quiz questions.
type QuestionRepository interface {
	SaveQuestion(ctx context.Context, question *Question) error
	UpdateQuestion(ctx context.Context, question *Question) error

	// GetQuestionByID returns nil, nil when the question does not exist.
	GetQuestionByID(ctx context.Context, id string) (*Question, error)

	// ListQuestions returns questions of the given level, or all when level is nil.
	ListQuestions(ctx context.Context, level *ApprovalLevel) ([]*Question, error)

	// GetRandomQuestions samples up to n approved questions.
	GetRandomQuestions(ctx context.Context, n int) ([]*Question, error)

	// UpdateApprovalLevel reports false when no row matched id.
	UpdateApprovalLevel(ctx context.Context, id string, level ApprovalLevel) (bool, error)

	// GetAnswer returns nil, nil when the question does not exist.
	GetAnswer(ctx context.Context, id string) (*int, error)

	// GetAnswers maps question id to answer index for the ids that exist.
	GetAnswers(ctx context.Context, ids []string) (map[string]int, error)
}

// SubmissionRepository persists quiz submissions.
type SubmissionRepository interface {
	SaveSubmission(ctx context.Context, submission *QuizSubmission) error

	// GetTopPerformers orders by score desc, earliest submission first on ties.
	GetTopPerformers(ctx context.Context, n int) ([]*QuizSubmission, error)
}

// HRContactRepository persists HR contacts and their send history.
type HRContactRepository interface {
	Create(ctx context.Context, contact *HRContact) error
	Update(ctx context.Context, contact *HRContact) error

	// GetByID returns nil, nil when the contact does not exist.
	GetByID(ctx context.Context, id string) (*HRContact, error)

	Delete(ctx context.Context, id string) (bool, error)

	// Search returns one page of contacts ordered by creation date, newest first, plus the total match count.
	Search(ctx context.Context, filter HRContactFilter) ([]*HRContact, int, error)

	// IncrementSendCount bumps times_sent by one, stamps last_sent_at and appends one history row.
	IncrementSendCount(ctx context.Context, id string, jobURL string, sentAt time.Time) error

	ListSendHistory(ctx context.Context, id string) ([]MailSendInfo, error)
}

// ContactQueryRepository persists contact form submissions.
type ContactQueryRepository interface {
	Save(ctx context.Context, query *ContactQuery) error
	List(ctx context.Context, offset, limit int) ([]*ContactQuery, int, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
