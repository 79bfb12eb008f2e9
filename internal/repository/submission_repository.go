package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/repository/models"
	"quiz-folio/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxSubmissionRepository struct {
	db *sqlx.DB
}

// NewSQLXSubmissionRepository creates a new quiz submission repository.
func NewSQLXSubmissionRepository(db *sqlx.DB) domain.SubmissionRepository {
	return &sqlxSubmissionRepository{db: db}
}

func (r *sqlxSubmissionRepository) SaveSubmission(ctx context.Context, submission *domain.QuizSubmission) error {
	if submission.ID == "" {
		submission.ID = util.NewULID()
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}

	m := fromDomainSubmission(submission)
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO quiz_submissions (id, name, email, score, total_questions, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	if _, err := exec.ExecContext(ctx, query, m.ID, m.Name, m.Email, m.Score, m.TotalQuestions, m.SubmittedAt); err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

func (r *sqlxSubmissionRepository) GetTopPerformers(ctx context.Context, n int) ([]*domain.QuizSubmission, error) {
	if n <= 0 {
		return []*domain.QuizSubmission{}, nil
	}

	var rows []models.QuizSubmission
	exec := GetExecutor(ctx, r.db)
	query := fmt.Sprintf(`SELECT id, name, email, score, total_questions, submitted_at FROM quiz_submissions
		ORDER BY score DESC, submitted_at ASC FETCH FIRST %d ROWS ONLY`, n)

	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get top performers: %w", err)
	}

	submissions := make([]*domain.QuizSubmission, len(rows))
	for i := range rows {
		submissions[i] = toDomainSubmission(&rows[i])
	}
	return submissions, nil
}

func toDomainSubmission(m *models.QuizSubmission) *domain.QuizSubmission {
	return &domain.QuizSubmission{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email.String,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		SubmittedAt:    m.SubmittedAt,
	}
}

func fromDomainSubmission(s *domain.QuizSubmission) *models.QuizSubmission {
	return &models.QuizSubmission{
		ID:             s.ID,
		Name:           s.Name,
		Email:          util.StringToNullString(s.Email),
		Score:          s.Score,
		TotalQuestions: s.TotalQuestions,
		SubmittedAt:    s.SubmittedAt,
	}
}
