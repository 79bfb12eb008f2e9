package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/logger"
	"quiz-folio/internal/util"
	"quiz-folio/internal/validation"

	"go.uber.org/zap"
)

// HRContactService manages HR contacts and their resume outreach
type HRContactService interface {
	Create(ctx context.Context, req *dto.HRContactRequest) (*dto.HRContactResponse, error)
	// Update overwrites only the non-empty fields of req.
	Update(ctx context.Context, id string, req *dto.HRContactRequest) (*dto.HRContactResponse, error)
	Get(ctx context.Context, id string) (*dto.HRContactResponse, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, searchText string, page, pageSize int) (*dto.HRContactPageResponse, error)
	// SendResume queues a resume mail job, waiting for its outcome when wait is set.
	SendResume(ctx context.Context, id string, wait bool) (*dto.SendResumeResponse, error)
	SaveAndSendResume(ctx context.Context, req *dto.HRContactRequest) (*dto.SendResumeResponse, error)
	ExportXLSX(ctx context.Context, searchText string) ([]byte, error)
}

type hrContactService struct {
	repo       domain.HRContactRepository
	mailer     ResumeMailer
	dispatcher MailDispatcher
	validator  *validation.Validator
	now        func() time.Time
}

// NewHRContactService creates a new HRContactService
func NewHRContactService(repo domain.HRContactRepository, mailer ResumeMailer, dispatcher MailDispatcher) HRContactService {
	return &hrContactService{
		repo:       repo,
		mailer:     mailer,
		dispatcher: dispatcher,
		validator:  validation.NewValidator(),
		now:        time.Now,
	}
}

func (s *hrContactService) Create(ctx context.Context, req *dto.HRContactRequest) (*dto.HRContactResponse, error) {
	contact, err := s.create(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := toHRContactResponse(contact)
	return &resp, nil
}

func (s *hrContactService) create(ctx context.Context, req *dto.HRContactRequest) (*domain.HRContact, error) {
	if errs := s.validator.ValidateHRContactCreate(req); len(errs) > 0 {
		return nil, errs
	}
	emails, _ := s.validator.ParseHREmails(req.HREmail)

	contact := &domain.HRContact{
		Name:         strings.TrimSpace(req.HRName),
		Emails:       emails,
		Company:      strings.TrimSpace(req.Company),
		JobTitle:     util.FirstNonBlank(req.JobTitle, req.Role),
		JobURL:       strings.TrimSpace(req.JobURL),
		AdvertisedOn: strings.TrimSpace(req.AdvertisedOn),
		EmailSubject: strings.TrimSpace(req.EmailSubject),
		TimesSent:    0,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, domain.NewInternalError("Failed to create hr contact", err)
	}

	logger.Get().Info("HR contact created", zap.String("hrContactID", contact.ID), zap.String("company", contact.Company))
	return contact, nil
}

func (s *hrContactService) Update(ctx context.Context, id string, req *dto.HRContactRequest) (*dto.HRContactResponse, error) {
	if errs := s.validator.ValidateHRContactUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	contact, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.HRName); name != "" {
		contact.Name = name
	}
	if strings.TrimSpace(req.HREmail) != "" {
		contact.Emails, _ = s.validator.ParseHREmails(req.HREmail)
	}
	if company := strings.TrimSpace(req.Company); company != "" {
		contact.Company = company
	}
	if title := util.FirstNonBlank(req.JobTitle, req.Role); title != "" {
		contact.JobTitle = title
	}
	if jobURL := strings.TrimSpace(req.JobURL); jobURL != "" {
		contact.JobURL = jobURL
	}
	if advertisedOn := strings.TrimSpace(req.AdvertisedOn); advertisedOn != "" {
		contact.AdvertisedOn = advertisedOn
	}
	if subject := strings.TrimSpace(req.EmailSubject); subject != "" {
		contact.EmailSubject = subject
	}

	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, asDomainError(err, "Failed to update hr contact")
	}
	return s.Get(ctx, id)
}

func (s *hrContactService) getExisting(ctx context.Context, id string) (*domain.HRContact, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get hr contact", err)
	}
	if contact == nil {
		return nil, domain.NewHRContactNotFoundError(id)
	}
	return contact, nil
}

func (s *hrContactService) Get(ctx context.Context, id string) (*dto.HRContactResponse, error) {
	contact, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ListSendHistory(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get send history", err)
	}
	contact.SendHistory = history

	resp := toHRContactResponse(contact)
	return &resp, nil
}

func (s *hrContactService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.NewInternalError("Failed to delete hr contact", err)
	}
	if !deleted {
		return domain.NewHRContactNotFoundError(id)
	}
	logger.Get().Info("HR contact deleted", zap.String("hrContactID", id))
	return nil
}

func (s *hrContactService) Search(ctx context.Context, searchText string, page, pageSize int) (*dto.HRContactPageResponse, error) {
	filter := domain.HRContactFilter{SearchText: searchText, Page: page, PageSize: pageSize}.Normalize()

	contacts, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("Failed to search hr contacts", err)
	}

	resp := &dto.HRContactPageResponse{
		Items:      make([]dto.HRContactResponse, 0, len(contacts)),
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		IsLastPage: filter.IsLastPage(total),
	}
	for _, c := range contacts {
		resp.Items = append(resp.Items, toHRContactResponse(c))
	}
	return resp, nil
}

func (s *hrContactService) SendResume(ctx context.Context, id string, wait bool) (*dto.SendResumeResponse, error) {
	contact, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enqueue(ctx, contact, wait)
}

func (s *hrContactService) SaveAndSendResume(ctx context.Context, req *dto.HRContactRequest) (*dto.SendResumeResponse, error) {
	contact, err := s.create(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.enqueue(ctx, contact, req.Wait)
}

func (s *hrContactService) enqueue(ctx context.Context, contact *domain.HRContact, wait bool) (*dto.SendResumeResponse, error) {
	jobID, results, err := s.dispatcher.Submit(MailJob{
		Kind: "resume",
		Run: func(jobCtx context.Context) error {
			return s.mailer.SendResume(jobCtx, contact)
		},
	})
	if err != nil {
		if errors.Is(err, ErrDispatcherClosed) {
			return nil, domain.NewMailDeliveryError("Mail dispatcher is not accepting jobs", err)
		}
		return nil, asDomainError(err, "Failed to queue resume mail")
	}

	snapshot := toHRContactResponse(contact)
	resp := &dto.SendResumeResponse{JobID: jobID, Status: dto.MailJobQueued, HRContact: &snapshot}
	if !wait {
		return resp, nil
	}

	result, err := awaitMailResult(ctx, results)
	if err != nil {
		// The job keeps running; the caller only stopped waiting.
		logger.Get().Warn("Stopped waiting for resume mail", zap.String("jobID", jobID), zap.Error(err))
		return resp, nil
	}
	if result.Err != nil {
		resp.Status = dto.MailJobFailed
		resp.Error = result.Err.Error()
		return resp, nil
	}

	resp.Status = dto.MailJobSent
	if refreshed, err := s.Get(ctx, contact.ID); err == nil {
		resp.HRContact = refreshed
	}
	return resp, nil
}

// ExportXLSX writes every contact matching searchText to a workbook.
func (s *hrContactService) ExportXLSX(ctx context.Context, searchText string) ([]byte, error) {
	var all []*domain.HRContact
	for page := 1; ; page++ {
		filter := domain.HRContactFilter{SearchText: searchText, Page: page, PageSize: domain.MaxPageSize}.Normalize()
		contacts, total, err := s.repo.Search(ctx, filter)
		if err != nil {
			return nil, domain.NewInternalError("Failed to search hr contacts", err)
		}
		all = append(all, contacts...)
		if len(contacts) == 0 || filter.IsLastPage(total) {
			break
		}
	}

	data, err := hrContactsXLSX(all)
	if err != nil {
		return nil, domain.NewInternalError("Failed to export hr contacts", err)
	}
	return data, nil
}

func toHRContactResponse(c *domain.HRContact) dto.HRContactResponse {
	resp := dto.HRContactResponse{
		ID:           c.ID,
		HRName:       c.Name,
		Emails:       c.Emails,
		Company:      c.Company,
		JobTitle:     c.JobTitle,
		JobURL:       c.JobURL,
		AdvertisedOn: c.AdvertisedOn,
		EmailSubject: c.EmailSubject,
		TimesSent:    c.TimesSent,
		CreatedAt:    c.CreatedAt,
		LastSentAt:   c.LastSentAt,
	}
	if resp.Emails == nil {
		resp.Emails = []string{}
	}
	for _, h := range c.SendHistory {
		resp.SendHistory = append(resp.SendHistory, dto.MailSendInfoResponse{
			ID:     h.ID,
			JobURL: h.JobURL,
			SentAt: h.SentAt,
		})
	}
	return resp
}
