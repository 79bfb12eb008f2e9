package dto

import "time"

// QuizQuestion is a question as served to a quiz taker, without its answer.
type QuizQuestion struct {
	ID         string   `json:"id"`
	Statement  string   `json:"statement"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
}

// QuizResponse represents one quiz in the API response
// @Description A set of random approved questions
type QuizResponse struct {
	Questions   []QuizQuestion `json:"questions"`
	QuestionIDs []string       `json:"question_ids"`
}

// SubmitQuizRequest carries the answer sheet.
// UserOptedAnswers and QuestionIDs are JSON-encoded arrays, e.g. "[0,2,1]" and "[\"01H...\"]".
// @Description Request body for submitting a quiz
type SubmitQuizRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	UserOptedAnswers string `json:"user_opted_answers"`
	QuestionIDs      string `json:"question_ids"`
}

// SubmitQuizResponse represents the scored submission
type SubmitQuizResponse struct {
	SubmissionID string `json:"submission_id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	Total        int    `json:"total"`
}

// CheckAnswerRequest checks a single answer
// @Description Request body for checking one answer
type CheckAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Opted      int    `json:"opted"`
}

// CheckAnswerResponse is 1 for a correct answer and 0 otherwise
type CheckAnswerResponse struct {
	QuestionID string `json:"question_id"`
	Score      int    `json:"score"`
}

// LeaderboardEntry is one ranked submission
type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	Name           string    `json:"name"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// LeaderboardResponse represents the top performers
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
