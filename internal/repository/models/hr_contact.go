package models

import (
	"database/sql"
	"time"
)

// HRContact is the row of the hr_contacts table.
type HRContact struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Emails       StringSlice    `db:"emails"`
	Company      string         `db:"company"`
	JobTitle     string         `db:"job_title"`
	JobURL       sql.NullString `db:"job_url"`
	AdvertisedOn sql.NullString `db:"advertised_on"`
	EmailSubject sql.NullString `db:"email_subject"`
	TimesSent    int            `db:"times_sent"`
	CreatedAt    time.Time      `db:"created_at"`
	LastSentAt   sql.NullTime   `db:"last_sent_at"`
}

// MailSendInfo is the row of the mail_send_infos table.
type MailSendInfo struct {
	ID          string         `db:"id"`
	HRContactID string         `db:"hr_contact_id"`
	JobURL      sql.NullString `db:"job_url"`
	SentAt      time.Time      `db:"sent_at"`
}
