package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/repository/models"
	"quiz-folio/internal/util"

	"github.com/jmoiron/sqlx"
)

const hrContactColumns = `id, name, emails, company, job_title, job_url, advertised_on, email_subject, times_sent, created_at, last_sent_at`

// hrContactSearchColumns are matched with LIKE against the lower-cased search text.
var hrContactSearchColumns = []string{
	"LOWER(id)",
	"LOWER(name)",
	"LOWER(company)",
	"LOWER(job_title)",
	"TO_CHAR(created_at, 'YYYY-MM-DD HH24:MI:SS')",
	"LOWER(advertised_on)",
}

type sqlxHRContactRepository struct {
	db *sqlx.DB
}

// NewSQLXHRContactRepository creates a new HR contact repository.
func NewSQLXHRContactRepository(db *sqlx.DB) domain.HRContactRepository {
	return &sqlxHRContactRepository{db: db}
}

func (r *sqlxHRContactRepository) Create(ctx context.Context, contact *domain.HRContact) error {
	if contact.ID == "" {
		contact.ID = util.NewULID()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}

	m := fromDomainHRContact(contact)
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO hr_contacts (` + hrContactColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := exec.ExecContext(ctx, query,
		m.ID, m.Name, m.Emails, m.Company, m.JobTitle, m.JobURL, m.AdvertisedOn,
		m.EmailSubject, m.TimesSent, m.CreatedAt, m.LastSentAt)
	if err != nil {
		return fmt.Errorf("failed to create hr contact: %w", err)
	}
	return nil
}

// Update overwrites the descriptive columns. times_sent and last_sent_at only move through IncrementSendCount.
func (r *sqlxHRContactRepository) Update(ctx context.Context, contact *domain.HRContact) error {
	m := fromDomainHRContact(contact)
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE hr_contacts SET name = ?, emails = ?, company = ?, job_title = ?, job_url = ?,
		advertised_on = ?, email_subject = ? WHERE id = ?`)

	result, err := exec.ExecContext(ctx, query,
		m.Name, m.Emails, m.Company, m.JobTitle, m.JobURL, m.AdvertisedOn, m.EmailSubject, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update hr contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewHRContactNotFoundError(contact.ID)
	}
	return nil
}

func (r *sqlxHRContactRepository) GetByID(ctx context.Context, id string) (*domain.HRContact, error) {
	var m models.HRContact
	exec := GetExecutor(ctx, r.db)

	if err := exec.GetContext(ctx, &m, exec.Rebind(`SELECT `+hrContactColumns+` FROM hr_contacts WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hr contact by id: %w", err)
	}
	return toDomainHRContact(&m), nil
}

// Delete removes the contact together with its send history.
func (r *sqlxHRContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := withTransaction(ctx, r.db, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, r.db)

		if _, err := exec.ExecContext(txCtx, exec.Rebind(`DELETE FROM mail_send_infos WHERE hr_contact_id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete send history: %w", err)
		}

		result, err := exec.ExecContext(txCtx, exec.Rebind(`DELETE FROM hr_contacts WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete hr contact: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		deleted = rowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *sqlxHRContactRepository) Search(ctx context.Context, filter domain.HRContactFilter) ([]*domain.HRContact, int, error) {
	filter = filter.Normalize()
	where, args := buildHRContactSearch(filter.SearchText)
	exec := GetExecutor(ctx, r.db)

	var total int
	if err := exec.GetContext(ctx, &total, exec.Rebind(`SELECT COUNT(*) FROM hr_contacts`+where), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count hr contacts: %w", err)
	}
	if total == 0 {
		return []*domain.HRContact{}, 0, nil
	}

	query := `SELECT ` + hrContactColumns + ` FROM hr_contacts` + where +
		` ORDER BY created_at DESC` + pageClause(filter.Offset(), filter.PageSize)

	var rows []models.HRContact
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to search hr contacts: %w", err)
	}

	contacts := make([]*domain.HRContact, len(rows))
	for i := range rows {
		contacts[i] = toDomainHRContact(&rows[i])
	}
	return contacts, total, nil
}

// buildHRContactSearch returns the WHERE clause and its arguments for a normalised search text.
func buildHRContactSearch(searchText string) (string, []interface{}) {
	if searchText == "" {
		return "", nil
	}

	pattern := "%" + escapeLike(searchText) + "%"
	conditions := make([]string, len(hrContactSearchColumns))
	args := make([]interface{}, len(hrContactSearchColumns))
	for i, col := range hrContactSearchColumns {
		conditions[i] = col + ` LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return " WHERE " + strings.Join(conditions, " OR "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes user text match literally inside a LIKE pattern escaped with a backslash.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// IncrementSendCount bumps the counter in SQL so concurrent sends never lose an increment.
func (r *sqlxHRContactRepository) IncrementSendCount(ctx context.Context, id string, jobURL string, sentAt time.Time) error {
	return withTransaction(ctx, r.db, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, r.db)

		result, err := exec.ExecContext(txCtx,
			exec.Rebind(`UPDATE hr_contacts SET times_sent = times_sent + 1, last_sent_at = ? WHERE id = ?`),
			sentAt, id)
		if err != nil {
			return fmt.Errorf("failed to increment send count: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return domain.NewHRContactNotFoundError(id)
		}

		_, err = exec.ExecContext(txCtx,
			exec.Rebind(`INSERT INTO mail_send_infos (id, hr_contact_id, job_url, sent_at) VALUES (?, ?, ?, ?)`),
			util.NewULID(), id, util.StringToNullString(jobURL), sentAt)
		if err != nil {
			return fmt.Errorf("failed to record send history: %w", err)
		}
		return nil
	})
}

func (r *sqlxHRContactRepository) ListSendHistory(ctx context.Context, id string) ([]domain.MailSendInfo, error) {
	var rows []models.MailSendInfo
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT id, hr_contact_id, job_url, sent_at FROM mail_send_infos WHERE hr_contact_id = ? ORDER BY sent_at DESC`)

	if err := exec.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, fmt.Errorf("failed to list send history: %w", err)
	}

	history := make([]domain.MailSendInfo, len(rows))
	for i, row := range rows {
		history[i] = domain.MailSendInfo{
			ID:          row.ID,
			HRContactID: row.HRContactID,
			JobURL:      row.JobURL.String,
			SentAt:      row.SentAt,
		}
	}
	return history, nil
}

func toDomainHRContact(m *models.HRContact) *domain.HRContact {
	if m == nil {
		return nil
	}
	return &domain.HRContact{
		ID:           m.ID,
		Name:         m.Name,
		Emails:       []string(m.Emails),
		Company:      m.Company,
		JobTitle:     m.JobTitle,
		JobURL:       m.JobURL.String,
		AdvertisedOn: m.AdvertisedOn.String,
		EmailSubject: m.EmailSubject.String,
		TimesSent:    m.TimesSent,
		CreatedAt:    m.CreatedAt,
		LastSentAt:   util.NullTimeToPtr(m.LastSentAt),
	}
}

func fromDomainHRContact(c *domain.HRContact) *models.HRContact {
	if c == nil {
		return nil
	}
	return &models.HRContact{
		ID:           c.ID,
		Name:         c.Name,
		Emails:       models.StringSlice(c.Emails),
		Company:      c.Company,
		JobTitle:     c.JobTitle,
		JobURL:       util.StringToNullString(c.JobURL),
		AdvertisedOn: util.StringToNullString(c.AdvertisedOn),
		EmailSubject: util.StringToNullString(c.EmailSubject),
		TimesSent:    c.TimesSent,
		CreatedAt:    c.CreatedAt,
		LastSentAt:   util.TimePtrToNullTime(c.LastSentAt),
	}
}
