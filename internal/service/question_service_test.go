package service

import (
	"context"
	"errors"
	"testing"

	"quiz-folio/internal/cache"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func validQuestionRequest() *dto.QuestionRequest {
	return &dto.QuestionRequest{
		Statement:  " What is 2+2? ",
		OptionA:    "3",
		OptionB:    "4",
		OptionC:    "5",
		OptionD:    "6",
		Answer:     intPtr(1),
		Difficulty: "low",
		Category:   "general",
	}
}

func TestQuestionService_ListQuestions(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("ListQuestions", mock.Anything, (*domain.ApprovalLevel)(nil)).Return([]*domain.Question{approvedQuestion("q1", 0)}, nil).Once()
	repo.On("ListQuestions", mock.Anything, mock.MatchedBy(func(l *domain.ApprovalLevel) bool {
		return l != nil && *l == domain.ApprovalNew
	})).Return([]*domain.Question{}, nil).Once()

	svc := NewQuestionService(repo, nil, nil)

	all, err := svc.ListQuestions(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, all.Count)
	assert.Equal(t, "APPROVED", all.Questions[0].ApprovalLevel)

	fresh, err := svc.ListQuestions(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Count)

	_, err = svc.ListQuestions(context.Background(), "PENDING")
	assertDomainCode(t, err, domain.CodeInvalidApprovalLevel)
	repo.AssertExpectations(t)
}

func TestQuestionService_CreateQuestion(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("SaveQuestion", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
		return q.ApprovalLevel == domain.ApprovalNew && q.Statement == "What is 2+2?" &&
			q.Difficulty == domain.DifficultyLow && q.Category == domain.CategoryGeneral && q.Answer == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Question).ID = "q-new"
	}).Return(nil).Once()

	resp, err := NewQuestionService(repo, nil, nil).CreateQuestion(context.Background(), validQuestionRequest())
	require.NoError(t, err)
	assert.Equal(t, "q-new", resp.ID)
	assert.Equal(t, "NEW", resp.ApprovalLevel)
}

func TestQuestionService_CreateQuestion_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.QuestionRequest)
		code   domain.ErrorCode
	}{
		{"bad category", func(r *dto.QuestionRequest) { r.Category = "astrology" }, domain.CodeInvalidCategory},
		{"bad difficulty", func(r *dto.QuestionRequest) { r.Difficulty = "extreme" }, domain.CodeInvalidInput},
		{"answer out of range", func(r *dto.QuestionRequest) { r.Answer = intPtr(4) }, domain.CodeInvalidInput},
		{"missing answer", func(r *dto.QuestionRequest) { r.Answer = nil }, domain.CodeInvalidInput},
		{"blank option", func(r *dto.QuestionRequest) { r.OptionC = " " }, domain.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockQuestionRepository)
			req := validQuestionRequest()
			tt.mutate(req)

			_, err := NewQuestionService(repo, nil, nil).CreateQuestion(context.Background(), req)
			assertDomainCode(t, err, tt.code)
			repo.AssertNotCalled(t, "SaveQuestion", mock.Anything, mock.Anything)
		})
	}
}

func TestQuestionService_UpdateQuestion_EditGoesBackToNew(t *testing.T) {
	repo := new(MockQuestionRepository)
	existing := approvedQuestion("q1", 0)
	existing.ApprovalLevel = domain.ApprovalEdit

	repo.On("GetQuestionByID", mock.Anything, "q1").Return(existing, nil)
	repo.On("UpdateQuestion", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
		return q.ID == "q1" && q.ApprovalLevel == domain.ApprovalNew && q.Answer == 1
	})).Return(nil).Once()

	resp, err := NewQuestionService(repo, nil, nil).UpdateQuestion(context.Background(), "q1", validQuestionRequest())
	require.NoError(t, err)
	assert.Equal(t, "NEW", resp.ApprovalLevel)
	repo.AssertExpectations(t)
}

func TestQuestionService_UpdateQuestion_ApprovedInvalidatesPool(t *testing.T) {
	repo := new(MockQuestionRepository)
	mc := new(MockCache)
	repo.On("GetQuestionByID", mock.Anything, "q1").Return(approvedQuestion("q1", 0), nil)
	repo.On("UpdateQuestion", mock.Anything, mock.Anything).Return(nil)
	mc.On("Delete", mock.Anything, cache.QuestionPoolKey()).Return(nil).Once()

	resp, err := NewQuestionService(repo, mc, nil).UpdateQuestion(context.Background(), "q1", validQuestionRequest())
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.ApprovalLevel)
	mc.AssertExpectations(t)
}

func TestQuestionService_UpdateQuestion_NotFound(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("GetQuestionByID", mock.Anything, "nope").Return(nil, nil)

	_, err := NewQuestionService(repo, nil, nil).UpdateQuestion(context.Background(), "nope", validQuestionRequest())
	assertDomainCode(t, err, domain.CodeQuestionNotFound)
}

func TestQuestionService_ChangeApprovalLevel(t *testing.T) {
	tests := []struct {
		name         string
		level        string
		want         domain.ApprovalLevel
		wantRedirect string
	}{
		{"approve", "APPROVED", domain.ApprovalApproved, "/admin?approvalLevel=NEW"},
		{"discard", "discard", domain.ApprovalDiscard, "/admin?approvalLevel=NEW"},
		{"edit", "EDIT", domain.ApprovalEdit, "/add-question?questionId=q1"},
		{"numeric new", "1", domain.ApprovalNew, "/admin?approvalLevel=NEW"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockQuestionRepository)
			mc := new(MockCache)
			moved := approvedQuestion("q1", 0)
			moved.ApprovalLevel = tt.want

			repo.On("UpdateApprovalLevel", mock.Anything, "q1", tt.want).Return(true, nil).Once()
			repo.On("GetQuestionByID", mock.Anything, "q1").Return(moved, nil)
			mc.On("Delete", mock.Anything, cache.QuestionPoolKey()).Return(nil).Once()

			resp, err := NewQuestionService(repo, mc, nil).ChangeApprovalLevel(context.Background(), "q1",
				&dto.ChangeApprovalRequest{ApprovalLevel: tt.level, CurrentView: "NEW"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRedirect, resp.Redirect)
			assert.Equal(t, tt.want.String(), resp.Question.ApprovalLevel)
			repo.AssertExpectations(t)
			mc.AssertExpectations(t)
		})
	}
}

func TestQuestionService_ChangeApprovalLevel_Errors(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("UpdateApprovalLevel", mock.Anything, "missing", domain.ApprovalApproved).Return(false, nil)
	repo.On("UpdateApprovalLevel", mock.Anything, "broken", domain.ApprovalApproved).Return(false, errors.New("db down"))
	svc := NewQuestionService(repo, nil, nil)

	_, err := svc.ChangeApprovalLevel(context.Background(), "missing", &dto.ChangeApprovalRequest{ApprovalLevel: "APPROVED"})
	assertDomainCode(t, err, domain.CodeQuestionNotFound)

	_, err = svc.ChangeApprovalLevel(context.Background(), "broken", &dto.ChangeApprovalRequest{ApprovalLevel: "APPROVED"})
	assertDomainCode(t, err, domain.CodeInternal)

	_, err = svc.ChangeApprovalLevel(context.Background(), "q1", &dto.ChangeApprovalRequest{ApprovalLevel: "9"})
	assertDomainCode(t, err, domain.CodeInvalidApprovalLevel)
}

func TestQuestionService_DiscardQuestion(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("UpdateApprovalLevel", mock.Anything, "q1", domain.ApprovalDiscard).Return(true, nil).Once()
	repo.On("UpdateApprovalLevel", mock.Anything, "q2", domain.ApprovalDiscard).Return(false, nil).Once()
	repo.On("UpdateApprovalLevel", mock.Anything, "q3", domain.ApprovalDiscard).Return(false, errors.New("db down")).Once()
	svc := NewQuestionService(repo, nil, nil)

	assert.NoError(t, svc.DiscardQuestion(context.Background(), "q1"))
	assertDomainCode(t, svc.DiscardQuestion(context.Background(), "q2"), domain.CodeQuestionNotFound)
	assertDomainCode(t, svc.DiscardQuestion(context.Background(), "q3"), domain.CodeInternal)
	repo.AssertExpectations(t)
}

func TestQuestionService_GetQuestion(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("GetQuestionByID", mock.Anything, "q1").Return(approvedQuestion("q1", 3), nil)
	repo.On("GetQuestionByID", mock.Anything, "q2").Return(nil, errors.New("db down"))
	svc := NewQuestionService(repo, nil, nil)

	resp, err := svc.GetQuestion(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Answer)

	_, err = svc.GetQuestion(context.Background(), "q2")
	assertDomainCode(t, err, domain.CodeInternal)
}

func TestQuestionService_GenerateDrafts(t *testing.T) {
	repo := new(MockQuestionRepository)
	gen := new(MockQuestionGenerator)
	draft := approvedQuestion("", 2)
	draft.ApprovalLevel = domain.ApprovalApproved

	gen.On("GenerateQuestions", mock.Anything, domain.CategoryMusic, 1).Return([]*domain.Question{draft}, nil)
	repo.On("SaveQuestion", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
		return q.ApprovalLevel == domain.ApprovalNew && q.Category == domain.CategoryMusic
	})).Return(nil).Once()

	resp, err := NewQuestionService(repo, nil, gen).GenerateDrafts(context.Background(), &dto.GenerateQuestionsRequest{Category: "music", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "NEW", resp.Questions[0].ApprovalLevel)
}

func TestQuestionService_GenerateDrafts_Disabled(t *testing.T) {
	_, err := NewQuestionService(new(MockQuestionRepository), nil, nil).GenerateDrafts(context.Background(),
		&dto.GenerateQuestionsRequest{Category: "music", Count: 1})
	assertDomainCode(t, err, domain.CodeQuestionGeneration)
}

func TestQuestionService_GenerateDrafts_GeneratorError(t *testing.T) {
	gen := new(MockQuestionGenerator)
	gen.On("GenerateQuestions", mock.Anything, domain.CategoryMusic, 2).Return(nil, errors.New("ollama down"))

	_, err := NewQuestionService(new(MockQuestionRepository), nil, gen).GenerateDrafts(context.Background(),
		&dto.GenerateQuestionsRequest{Category: "MUSIC", Count: 2})
	assertDomainCode(t, err, domain.CodeQuestionGeneration)
}

func TestQuestionService_GenerateDrafts_InvalidRequest(t *testing.T) {
	gen := new(MockQuestionGenerator)

	_, err := NewQuestionService(new(MockQuestionRepository), nil, gen).GenerateDrafts(context.Background(),
		&dto.GenerateQuestionsRequest{Category: "MUSIC", Count: 0})
	var validationErrs domain.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	assert.Equal(t, "count", validationErrs[0].Field)
	gen.AssertNotCalled(t, "GenerateQuestions", mock.Anything, mock.Anything, mock.Anything)
}
