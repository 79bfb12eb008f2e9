package models

import (
	"database/sql"
	"time"
)

// QuizSubmission is the row of the quiz_submissions table.
type QuizSubmission struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Email          sql.NullString `db:"email"`
	Score          int            `db:"score"`
	TotalQuestions int            `db:"total_questions"`
	SubmittedAt    time.Time      `db:"submitted_at"`
}
