package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAnswers(t *testing.T) {
	answers := map[string]int{"q1": 0, "q2": 3, "q3": 2}

	tests := []struct {
		name  string
		ids   []string
		opted []int
		want  int
	}{
		{"all correct", []string{"q1", "q2", "q3"}, []int{0, 3, 2}, 3},
		{"none correct", []string{"q1", "q2", "q3"}, []int{1, 1, 1}, 0},
		{"positional comparison", []string{"q3", "q1"}, []int{2, 0}, 2},
		{"unknown id never matches", []string{"q1", "missing"}, []int{0, 0}, 1},
		{"unanswered counts as wrong", []string{"q1", "q2"}, []int{-1, 3}, 1},
		{"empty", nil, nil, 0},
		{"repeated id scores once", []string{"q1", "q1", "q1", "q1", "q1"}, []int{0, 0, 0, 0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAnswers(answers, tt.ids, tt.opted)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, len(tt.ids))
		})
	}
}

func TestFirstDuplicate(t *testing.T) {
	assert.Equal(t, "", FirstDuplicate(nil))
	assert.Equal(t, "", FirstDuplicate([]string{"q1", "q2"}))
	assert.Equal(t, "q2", FirstDuplicate([]string{"q1", "q2", "q3", "q2"}))
}
