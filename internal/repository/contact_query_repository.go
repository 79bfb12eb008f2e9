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

type sqlxContactQueryRepository struct {
	db *sqlx.DB
}

// NewSQLXContactQueryRepository creates a new contact query repository.
func NewSQLXContactQueryRepository(db *sqlx.DB) domain.ContactQueryRepository {
	return &sqlxContactQueryRepository{db: db}
}

func (r *sqlxContactQueryRepository) Save(ctx context.Context, q *domain.ContactQuery) error {
	if q.ID == "" {
		q.ID = util.NewULID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO contact_queries (id, name, email, phone, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`)

	if _, err := exec.ExecContext(ctx, query, q.ID, q.Name, q.Email, util.StringToNullString(q.Phone), q.Message, q.CreatedAt); err != nil {
		return fmt.Errorf("failed to save contact query: %w", err)
	}
	return nil
}

// List returns one page of contact queries, newest first, plus the total count.
func (r *sqlxContactQueryRepository) List(ctx context.Context, offset, limit int) ([]*domain.ContactQuery, int, error) {
	exec := GetExecutor(ctx, r.db)

	var total int
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM contact_queries`); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact queries: %w", err)
	}
	if total == 0 {
		return []*domain.ContactQuery{}, 0, nil
	}

	var rows []models.ContactQuery
	query := `SELECT id, name, email, phone, message, created_at FROM contact_queries ORDER BY created_at DESC` + pageClause(offset, limit)
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, 0, fmt.Errorf("failed to list contact queries: %w", err)
	}

	queries := make([]*domain.ContactQuery, len(rows))
	for i, row := range rows {
		queries[i] = &domain.ContactQuery{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Phone:     row.Phone.String,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		}
	}
	return queries, total, nil
}
