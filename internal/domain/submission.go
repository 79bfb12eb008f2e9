package domain

import "time"

// QuizSubmission is the immutable record of one completed quiz.
type QuizSubmission struct {
	ID             string
	Name           string
	Email          string
	Score          int
	TotalQuestions int
	SubmittedAt    time.Time
}

// ScoreAnswers counts the positions where opted[i] equals the stored answer of questionIDs[i].
// IDs missing from answers never match, and a repeated ID only scores at its first position.
func ScoreAnswers(answers map[string]int, questionIDs []string, opted []int) int {
	score := 0
	seen := make(map[string]struct{}, len(questionIDs))
	for i, id := range questionIDs {
		if i >= len(opted) {
			break
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if actual, ok := answers[id]; ok && actual == opted[i] {
			score++
		}
	}
	return score
}

// FirstDuplicate returns the first ID that appears more than once, or "" when all are distinct.
func FirstDuplicate(ids []string) string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}
