package service

import (
	"context"
	"strings"
	"time"

	"quiz-folio/internal/adapter/storage"
	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const hrFallbackSalutation = "Dear Hiring Manager"

// SelectSubject picks the outreach subject for a contact already mailed timesSent times.
func SelectSubject(timesSent int, override string, subjects domain.OutreachSubjects) string {
	return subjects.Select(timesSent, override)
}

// ResumeMailer sends the resume email to every address of an HR contact.
type ResumeMailer interface {
	// SendResume records one send only when every address was delivered.
	SendResume(ctx context.Context, contact *domain.HRContact) error
}

type resumeMailer struct {
	sender      domain.EmailSender
	resumes     domain.ResumeStore
	repo        domain.HRContactRepository
	outreach    config.OutreachConfig
	defaultFile string
	now         func() time.Time
}

// NewResumeMailer creates a new ResumeMailer
func NewResumeMailer(
	sender domain.EmailSender,
	resumes domain.ResumeStore,
	repo domain.HRContactRepository,
	outreach config.OutreachConfig,
	resume config.ResumeConfig,
) ResumeMailer {
	return &resumeMailer{
		sender:      sender,
		resumes:     resumes,
		repo:        repo,
		outreach:    outreach,
		defaultFile: resume.DefaultFile,
		now:         time.Now,
	}
}

func (m *resumeMailer) subjects() domain.OutreachSubjects {
	return domain.OutreachSubjects{
		Default:  m.outreach.DefaultSubject,
		Reminder: m.outreach.ReminderSubject,
		Outreach: m.outreach.OutreachSubject,
	}
}

func (m *resumeMailer) SendResume(ctx context.Context, contact *domain.HRContact) error {
	if len(contact.Emails) == 0 {
		return domain.NewInvalidInputError("hrEmail can't be null or empty")
	}

	subject := SelectSubject(contact.TimesSent, contact.EmailSubject, m.subjects())

	attachment, err := storage.FindWithFallback(ctx, m.resumes, contact.CompanyKey(), m.defaultFile)
	if err != nil {
		return domain.NewMailDeliveryError("Failed to load resume", err)
	}

	body, err := renderMail(resumeTemplate, resumeMailData{
		Salutation:   salutation(contact.Name, hrFallbackSalutation),
		JobTitle:     contact.JobTitle,
		Company:      contact.Company,
		JobURL:       contact.JobURL,
		AdvertisedOn: contact.AdvertisedOn,
		SenderName:   m.outreach.SenderName,
		PortfolioURL: m.outreach.PortfolioURL,
	})
	if err != nil {
		return domain.NewInternalError("Failed to render resume email", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, address := range contact.Emails {
		address := strings.TrimSpace(address)
		g.Go(func() error {
			msg := &domain.EmailMessage{
				To:             address,
				ToName:         contact.Name,
				Subject:        subject,
				HTMLBody:       body,
				Attachments:    []domain.Attachment{*attachment},
				IdempotencyKey: uuid.NewString(),
			}
			if err := m.sender.Send(gctx, msg); err != nil {
				logger.Get().Warn("Resume email failed",
					zap.String("hrContactID", contact.ID),
					zap.String("to", address),
					zap.String("sender", m.sender.Name()),
					zap.Error(err))
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.NewMailDeliveryError("Failed to send resume to every address", err)
	}

	if err := m.repo.IncrementSendCount(ctx, contact.ID, contact.JobURL, m.now()); err != nil {
		return asDomainError(err, "Failed to record resume send")
	}

	logger.Get().Info("Resume sent",
		zap.String("hrContactID", contact.ID),
		zap.String("company", contact.Company),
		zap.String("subject", subject),
		zap.String("attachment", attachment.Filename),
		zap.Int("recipients", len(contact.Emails)))
	return nil
}
