package dto

import "time"

// QuestionRequest creates or edits a question
// @Description Request body for creating or updating a question
type QuestionRequest struct {
	Statement  string `json:"statement"`
	OptionA    string `json:"option_a"`
	OptionB    string `json:"option_b"`
	OptionC    string `json:"option_c"`
	OptionD    string `json:"option_d"`
	Answer     *int   `json:"answer"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
}

// QuestionResponse is the admin view of a question, including its answer
type QuestionResponse struct {
	ID            string    `json:"id"`
	Statement     string    `json:"statement"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	Answer        int       `json:"answer"`
	Difficulty    string    `json:"difficulty"`
	Category      string    `json:"category"`
	ApprovalLevel string    `json:"approval_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuestionListResponse wraps the admin question list
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Count     int                `json:"count"`
}

// ChangeApprovalRequest moves a question to another approval level.
// CurrentView is the level filter of the admin list the change was made from.
type ChangeApprovalRequest struct {
	ApprovalLevel string `json:"approval_level"`
	CurrentView   string `json:"current_view"`
}

// ChangeApprovalResponse tells the admin UI where to go next
type ChangeApprovalResponse struct {
	Question QuestionResponse `json:"question"`
	Redirect string           `json:"redirect"`
}

// GenerateQuestionsRequest asks the LLM for drafts
type GenerateQuestionsRequest struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
