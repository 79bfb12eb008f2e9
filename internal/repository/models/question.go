package models

import "time"

// Question is the row of the questions table.
type Question struct {
	ID            string    `db:"id"`
	Statement     string    `db:"statement"`
	OptionA       string    `db:"option_a"`
	OptionB       string    `db:"option_b"`
	OptionC       string    `db:"option_c"`
	OptionD       string    `db:"option_d"`
	Answer        int       `db:"answer"`
	Difficulty    string    `db:"difficulty"`
	Category      string    `db:"category"`
	ApprovalLevel int       `db:"approval_level"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// QuestionAnswer is the projection used for scoring.
type QuestionAnswer struct {
	ID     string `db:"id"`
	Answer int    `db:"answer"`
}
