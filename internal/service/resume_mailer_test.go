package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quiz-folio/internal/adapter/mail"
	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testOutreach = config.OutreachConfig{
	SenderName:      "Shubh",
	PortfolioURL:    "https://folio.example.com",
	DefaultSubject:  "default subject",
	ReminderSubject: "reminder subject",
	OutreachSubject: "outreach subject",
}

func newTestResumeMailer(sender *MockEmailSender, store *MockResumeStore, repo *MockHRContactRepository) ResumeMailer {
	return NewResumeMailer(sender, store, repo, testOutreach, config.ResumeConfig{DefaultFile: "resume"})
}

func testContact() *domain.HRContact {
	return &domain.HRContact{
		ID:       "01HZX0000000000000000000HR",
		Name:     "Jane",
		Emails:   []string{"jane@acme.com", "hr@acme.com"},
		Company:  "  Acme ",
		JobTitle: "Backend Engineer",
		JobURL:   "https://acme.com/jobs/1",
	}
}

func TestSelectSubject(t *testing.T) {
	subjects := domain.OutreachSubjects{Default: "d", Reminder: "r", Outreach: "o"}

	assert.Equal(t, "r", SelectSubject(20, "Hello", subjects))
	assert.Equal(t, "o", SelectSubject(16, "Hello", subjects))
	assert.Equal(t, "Hello", SelectSubject(3, "Hello", subjects))
	assert.Equal(t, "d", SelectSubject(0, "", subjects))
	assert.Equal(t, "d", SelectSubject(5, " ", subjects), "5 is not past the threshold")
}

func TestResumeMailer_SendsToEveryAddressAndCountsOnce(t *testing.T) {
	sender := new(MockEmailSender)
	store := new(MockResumeStore)
	repo := new(MockHRContactRepository)
	contact := testContact()

	resume := &domain.Attachment{Filename: "acme.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}
	store.On("Find", mock.Anything, "acme").Return(resume, nil).Once()
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *domain.EmailMessage) bool {
		return msg.Subject == "default subject" &&
			len(msg.Attachments) == 1 && msg.Attachments[0].Filename == "acme.pdf" &&
			strings.Contains(msg.HTMLBody, "Hi Jane") &&
			strings.Contains(msg.HTMLBody, "Backend Engineer") &&
			strings.Contains(msg.HTMLBody, "https://folio.example.com") &&
			msg.IdempotencyKey != ""
	})).Return(nil).Twice()
	repo.On("IncrementSendCount", mock.Anything, contact.ID, contact.JobURL, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := newTestResumeMailer(sender, store, repo).SendResume(context.Background(), contact)
	require.NoError(t, err)

	sender.AssertNumberOfCalls(t, "Send", 2)
	sender.AssertCalled(t, "Send", mock.Anything, mock.MatchedBy(func(msg *domain.EmailMessage) bool { return msg.To == "jane@acme.com" }))
	sender.AssertCalled(t, "Send", mock.Anything, mock.MatchedBy(func(msg *domain.EmailMessage) bool { return msg.To == "hr@acme.com" }))
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestResumeMailer_FallsBackToDefaultResume(t *testing.T) {
	sender := new(MockEmailSender)
	store := new(MockResumeStore)
	repo := new(MockHRContactRepository)
	contact := testContact()
	contact.Emails = []string{"jane@acme.com"}

	store.On("Find", mock.Anything, "acme").Return(nil, domain.ErrResumeNotFound).Once()
	store.On("Find", mock.Anything, "resume").Return(&domain.Attachment{Filename: "resume.pdf"}, nil).Once()
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *domain.EmailMessage) bool {
		return msg.Attachments[0].Filename == "resume.pdf"
	})).Return(nil).Once()
	repo.On("IncrementSendCount", mock.Anything, contact.ID, contact.JobURL, mock.Anything).Return(nil).Once()

	require.NoError(t, newTestResumeMailer(sender, store, repo).SendResume(context.Background(), contact))
	store.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestResumeMailer_OneFailingAddressDoesNotCount(t *testing.T) {
	sender := new(MockEmailSender)
	store := new(MockResumeStore)
	repo := new(MockHRContactRepository)
	contact := testContact()

	store.On("Find", mock.Anything, "acme").Return(&domain.Attachment{Filename: "acme.pdf"}, nil)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *domain.EmailMessage) bool { return msg.To == "jane@acme.com" })).Return(nil).Maybe()
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *domain.EmailMessage) bool { return msg.To == "hr@acme.com" })).Return(errors.New("mailbox full"))

	err := newTestResumeMailer(sender, store, repo).SendResume(context.Background(), contact)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeMailDelivery, domainErr.Code)
	repo.AssertNotCalled(t, "IncrementSendCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResumeMailer_SubjectRotation(t *testing.T) {
	sender := new(MockEmailSender)
	store := new(MockResumeStore)
	repo := new(MockHRContactRepository)
	contact := testContact()
	contact.Emails = []string{"jane@acme.com"}
	contact.TimesSent = 20
	contact.EmailSubject = "custom"

	store.On("Find", mock.Anything, "acme").Return(&domain.Attachment{Filename: "acme.pdf"}, nil)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *domain.EmailMessage) bool {
		return msg.Subject == "reminder subject"
	})).Return(nil).Once()
	repo.On("IncrementSendCount", mock.Anything, contact.ID, contact.JobURL, mock.Anything).Return(nil).Once()

	require.NoError(t, newTestResumeMailer(sender, store, repo).SendResume(context.Background(), contact))
	sender.AssertExpectations(t)
}

func TestResumeMailer_NoResumeAtAll(t *testing.T) {
	sender := new(MockEmailSender)
	store := new(MockResumeStore)
	repo := new(MockHRContactRepository)

	store.On("Find", mock.Anything, mock.Anything).Return(nil, domain.ErrResumeNotFound)

	err := newTestResumeMailer(sender, store, repo).SendResume(context.Background(), testContact())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResumeNotFound)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestResumeMailer_NoAddresses(t *testing.T) {
	contact := testContact()
	contact.Emails = nil

	err := newTestResumeMailer(new(MockEmailSender), new(MockResumeStore), new(MockHRContactRepository)).SendResume(context.Background(), contact)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestResumeMailer_IncrementFailurePassesDomainError(t *testing.T) {
	sender := new(MockEmailSender)
	store := new(MockResumeStore)
	repo := new(MockHRContactRepository)
	contact := testContact()
	contact.Emails = []string{"jane@acme.com"}

	store.On("Find", mock.Anything, "acme").Return(&domain.Attachment{Filename: "acme.pdf"}, nil)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)
	repo.On("IncrementSendCount", mock.Anything, contact.ID, contact.JobURL, mock.Anything).Return(domain.NewHRContactNotFoundError(contact.ID))

	err := newTestResumeMailer(sender, store, repo).SendResume(context.Background(), contact)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeHRContactNotFound, domainErr.Code)
}

func TestResumeMailer_UnconfiguredSMTPDoesNotCount(t *testing.T) {
	store := new(MockResumeStore)
	repo := new(MockHRContactRepository)
	store.On("Find", mock.Anything, "acme").Return(&domain.Attachment{Filename: "acme.pdf"}, nil).Once()

	sender := mail.NewSMTPSender(config.MailConfig{Provider: mail.ProviderSMTP})
	mailer := NewResumeMailer(sender, store, repo, testOutreach, config.ResumeConfig{DefaultFile: "resume"})

	err := mailer.SendResume(context.Background(), testContact())
	assertDomainCode(t, err, domain.CodeMailDelivery)
	repo.AssertNotCalled(t, "IncrementSendCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
