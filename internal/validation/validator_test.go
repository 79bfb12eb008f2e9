package validation

import (
	"testing"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHRRequest() *dto.HRContactRequest {
	return &dto.HRContactRequest{
		HRName:       "Jane",
		HREmail:      "jane@acme.com, hr@acme.com",
		Company:      "Acme",
		JobTitle:     "Backend Engineer",
		JobURL:       "https://acme.com/jobs/1",
		AdvertisedOn: "LinkedIn",
	}
}

func messages(errs domain.ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@acme.com", true},
		{"first.last+tag@sub.acme.co", true},
		{"o'brien@acme.com", true},
		{"no-at-sign.acme.com", false},
		{"two@@acme.com", false},
		{"spaces in@acme.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestParseHREmails(t *testing.T) {
	v := NewValidator()

	emails, errs := v.ParseHREmails(" jane@acme.com ,hr@acme.com")
	assert.Empty(t, errs)
	assert.Equal(t, []string{"jane@acme.com", "hr@acme.com"}, emails)

	_, errs = v.ParseHREmails("jane@acme.com,broken,also broken")
	require.Len(t, errs, 2)
	assert.Equal(t, "invalid hr Email at index : 1", errs[0].Message)
	assert.Equal(t, "invalid hr Email at index : 2", errs[1].Message)

	_, errs = v.ParseHREmails("  ")
	require.Len(t, errs, 1)
	assert.Equal(t, "hrEmail can't be null or empty", errs[0].Message)
}

func TestParseHREmails_DropsRepeatedAddresses(t *testing.T) {
	v := NewValidator()

	emails, errs := v.ParseHREmails("Jane@Acme.com, jane@acme.com,hr@acme.com, JANE@ACME.COM")
	assert.Empty(t, errs)
	assert.Equal(t, []string{"Jane@Acme.com", "hr@acme.com"}, emails)
}

func TestValidateHRContactCreate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		mutate func(r *dto.HRContactRequest)
		want   []string
	}{
		{"valid", func(r *dto.HRContactRequest) {}, []string{}},
		{"role instead of title", func(r *dto.HRContactRequest) { r.JobTitle = ""; r.Role = "SRE" }, []string{}},
		{"missing name", func(r *dto.HRContactRequest) { r.HRName = " " }, []string{"hrName can't be null or empty"}},
		{"missing company", func(r *dto.HRContactRequest) { r.Company = "" }, []string{"company can't be null or empty"}},
		{"missing title and role", func(r *dto.HRContactRequest) { r.JobTitle = ""; r.Role = "" }, []string{"both jobTitle and role can't be null or empty"}},
		{"missing url", func(r *dto.HRContactRequest) { r.JobURL = "" }, []string{"jobURL can't be null or empty"}},
		{"missing source", func(r *dto.HRContactRequest) { r.AdvertisedOn = "" }, []string{"advertisedOn can't be null or empty"}},
		{"bad email", func(r *dto.HRContactRequest) { r.HREmail = "nope" }, []string{"invalid hr Email at index : 0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validHRRequest()
			tt.mutate(req)
			assert.Equal(t, tt.want, append([]string{}, messages(v.ValidateHRContactCreate(req))...))
		})
	}
}

func TestValidateHRContactUpdate(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateHRContactUpdate(&dto.HRContactRequest{Company: "Globex"}))
	errs := v.ValidateHRContactUpdate(&dto.HRContactRequest{HREmail: "ok@acme.com,bad"})
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid hr Email at index : 1", errs[0].Message)
}

func TestValidateContactQuery(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateContactQuery(&dto.ContactQueryRequest{Name: "Sam", Email: "sam@x.com", Message: "Hi"}))

	errs := v.ValidateContactQuery(&dto.ContactQueryRequest{Email: "not-an-email"})
	assert.Equal(t, []string{
		"name can't be null or empty",
		"email has an invalid format",
		"message can't be null or empty",
	}, messages(errs))
}

func TestValidateSubmitQuizRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSubmitQuizRequest(&dto.SubmitQuizRequest{Name: "Al", UserOptedAnswers: "[1]", QuestionIDs: `["x"]`}))
	errs := v.ValidateSubmitQuizRequest(&dto.SubmitQuizRequest{Email: "bad"})
	assert.Len(t, errs, 4)
}

func TestValidateGenerateRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateGenerateRequest(&dto.GenerateQuestionsRequest{Category: "MUSIC", Count: 5}))
	assert.Len(t, v.ValidateGenerateRequest(&dto.GenerateQuestionsRequest{Count: 50}), 2)
}

func TestValidateID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateID("id", util.NewULID()))
	assert.Equal(t, domain.CodeMissingField, v.ValidateID("id", "")[0].Code)
	assert.Equal(t, domain.CodeInvalidFormat, v.ValidateID("id", "123")[0].Code)
}
