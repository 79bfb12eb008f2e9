package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApprovalLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ApprovalLevel
		wantErr bool
	}{
		{"approved by name", "APPROVED", ApprovalApproved, false},
		{"new lower case", "new", ApprovalNew, false},
		{"discard padded", "  Discard ", ApprovalDiscard, false},
		{"edit by number", "3", ApprovalEdit, false},
		{"approved by number", "0", ApprovalApproved, false},
		{"unknown number", "7", 0, true},
		{"unknown name", "PENDING", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseApprovalLevel(tt.input)
			if tt.wantErr {
				var domainErr *DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, CodeInvalidApprovalLevel, domainErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApprovalLevel_PersistedValues(t *testing.T) {
	assert.Equal(t, 0, int(ApprovalApproved))
	assert.Equal(t, 1, int(ApprovalNew))
	assert.Equal(t, 2, int(ApprovalDiscard))
	assert.Equal(t, 3, int(ApprovalEdit))
}

func TestApprovalLevel_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Level ApprovalLevel `json:"level"`
	}{ApprovalEdit})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"EDIT"}`, string(data))

	var fromName struct {
		Level ApprovalLevel `json:"level"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"level":"discard"}`), &fromName))
	assert.Equal(t, ApprovalDiscard, fromName.Level)

	var fromNumber struct {
		Level ApprovalLevel `json:"level"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"level":1}`), &fromNumber))
	assert.Equal(t, ApprovalNew, fromNumber.Level)

	assert.Error(t, json.Unmarshal([]byte(`{"level":true}`), &fromNumber))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("science and technology")
	require.NoError(t, err)
	assert.Equal(t, CategoryScienceAndTechnology, c)

	c, err = ParseCategory("MUSIC")
	require.NoError(t, err)
	assert.Equal(t, CategoryMusic, c)

	_, err = ParseCategory("ASTROLOGY")
	assert.Error(t, err)
	assert.Len(t, AllCategories(), 14)
}

func validQuestion() *Question {
	return &Question{
		ID:            "01HGZ8VNRYXS8QKNJV5GRWPWDQ",
		Statement:     "Which planet is known as the red planet?",
		OptionA:       "Venus",
		OptionB:       "Mars",
		OptionC:       "Jupiter",
		OptionD:       "Saturn",
		Answer:        1,
		Difficulty:    DifficultyLow,
		Category:      CategoryScienceAndTechnology,
		ApprovalLevel: ApprovalNew,
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid", func(q *Question) {}, false},
		{"blank statement", func(q *Question) { q.Statement = "  " }, true},
		{"blank option", func(q *Question) { q.OptionC = "" }, true},
		{"answer below range", func(q *Question) { q.Answer = -1 }, true},
		{"answer above range", func(q *Question) { q.Answer = 4 }, true},
		{"answer upper bound", func(q *Question) { q.Answer = 3 }, false},
		{"bad difficulty", func(q *Question) { q.Difficulty = "EXTREME" }, true},
		{"bad category", func(q *Question) { q.Category = "ASTROLOGY" }, true},
		{"bad approval level", func(q *Question) { q.ApprovalLevel = 9 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := q.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := validQuestion()
	assert.True(t, q.IsCorrect(1))
	assert.False(t, q.IsCorrect(0))
	assert.Equal(t, []string{"Venus", "Mars", "Jupiter", "Saturn"}, q.Options())
}

func TestAdminRedirect(t *testing.T) {
	assert.Equal(t, "/add-question?questionId=q1", AdminRedirect("q1", ApprovalEdit, "NEW"))
	assert.Equal(t, "/admin?approvalLevel=NEW", AdminRedirect("q1", ApprovalApproved, "NEW"))
	assert.Equal(t, "/admin?approvalLevel=", AdminRedirect("q1", ApprovalDiscard, ""))
}
