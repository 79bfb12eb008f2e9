package models

import (
	"database/sql"
	"time"
)

// ContactQuery is the row of the contact_queries table.
type ContactQuery struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Message   string         `db:"message"`
	CreatedAt time.Time      `db:"created_at"`
}
