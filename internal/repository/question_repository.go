package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/repository/models"
	"quiz-folio/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id, statement, option_a, option_b, option_c, option_d, answer, difficulty, category, approval_level, created_at, updated_at`

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new question repository.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

// SaveQuestion inserts a question. ID and timestamps are assigned when empty.
func (r *sqlxQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	now := time.Now()
	if question.CreatedAt.IsZero() {
		question.CreatedAt = now
	}
	question.UpdatedAt = now

	m := fromDomainQuestion(question)
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO questions (` + questionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := exec.ExecContext(ctx, query,
		m.ID, m.Statement, m.OptionA, m.OptionB, m.OptionC, m.OptionD,
		m.Answer, m.Difficulty, m.Category, m.ApprovalLevel, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// UpdateQuestion overwrites every editable column of an existing question.
func (r *sqlxQuestionRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	question.UpdatedAt = time.Now()
	m := fromDomainQuestion(question)

	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE questions SET statement = ?, option_a = ?, option_b = ?, option_c = ?, option_d = ?,
		answer = ?, difficulty = ?, category = ?, approval_level = ?, updated_at = ? WHERE id = ?`)

	result, err := exec.ExecContext(ctx, query,
		m.Statement, m.OptionA, m.OptionB, m.OptionC, m.OptionD,
		m.Answer, m.Difficulty, m.Category, m.ApprovalLevel, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuestionNotFoundError(question.ID)
	}
	return nil
}

func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var m models.Question
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE id = ?`)

	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}
	return toDomainQuestion(&m), nil
}

func (r *sqlxQuestionRepository) ListQuestions(ctx context.Context, level *domain.ApprovalLevel) ([]*domain.Question, error) {
	var rows []models.Question
	exec := GetExecutor(ctx, r.db)

	query := `SELECT ` + questionColumns + ` FROM questions`
	var args []interface{}
	if level != nil {
		query += ` WHERE approval_level = ?`
		args = append(args, int(*level))
	}
	query += ` ORDER BY created_at DESC`

	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

func (r *sqlxQuestionRepository) GetRandomQuestions(ctx context.Context, n int) ([]*domain.Question, error) {
	if n <= 0 {
		return []*domain.Question{}, nil
	}

	var rows []models.Question
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(fmt.Sprintf(`SELECT %s FROM questions WHERE approval_level = ? ORDER BY %s FETCH FIRST %d ROWS ONLY`,
		questionColumns, randomOrder(exec), n))

	if err := exec.SelectContext(ctx, &rows, query, int(domain.ApprovalApproved)); err != nil {
		return nil, fmt.Errorf("failed to get random questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

func (r *sqlxQuestionRepository) UpdateApprovalLevel(ctx context.Context, id string, level domain.ApprovalLevel) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE questions SET approval_level = ?, updated_at = ? WHERE id = ?`)

	result, err := exec.ExecContext(ctx, query, int(level), time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to update approval level: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqlxQuestionRepository) GetAnswer(ctx context.Context, id string) (*int, error) {
	var answer int
	exec := GetExecutor(ctx, r.db)

	if err := exec.GetContext(ctx, &answer, exec.Rebind(`SELECT answer FROM questions WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	return &answer, nil
}

func (r *sqlxQuestionRepository) GetAnswers(ctx context.Context, ids []string) (map[string]int, error) {
	answers := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return answers, nil
	}

	query, args, err := sqlx.In(`SELECT id, answer FROM questions WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build answers query: %w", err)
	}

	exec := GetExecutor(ctx, r.db)
	var rows []models.QuestionAnswer
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}

	for _, row := range rows {
		answers[row.ID] = row.Answer
	}
	return answers, nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:            m.ID,
		Statement:     m.Statement,
		OptionA:       m.OptionA,
		OptionB:       m.OptionB,
		OptionC:       m.OptionC,
		OptionD:       m.OptionD,
		Answer:        m.Answer,
		Difficulty:    domain.Difficulty(m.Difficulty),
		Category:      domain.Category(m.Category),
		ApprovalLevel: domain.ApprovalLevel(m.ApprovalLevel),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toDomainQuestions(rows []models.Question) []*domain.Question {
	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:            q.ID,
		Statement:     q.Statement,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		Answer:        q.Answer,
		Difficulty:    string(q.Difficulty),
		Category:      string(q.Category),
		ApprovalLevel: int(q.ApprovalLevel),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
