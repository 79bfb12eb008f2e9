package service

import (
	"context"
	"strings"
	"time"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/logger"
	"quiz-folio/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	visitorFallbackSalutation = "Dear Customer"
	adminFallbackSalutation   = "Dear admin"
)

// ContactService handles the public contact form
type ContactService interface {
	// SubmitContactQuery stores the query and queues the notification mails. Mail failures are logged only.
	SubmitContactQuery(ctx context.Context, req *dto.ContactQueryRequest) (*dto.ContactQueryResponse, error)
	ListContactQueries(ctx context.Context, page, pageSize int) (*dto.ContactQueryPageResponse, error)
}

type contactService struct {
	repo       domain.ContactQueryRepository
	sender     domain.EmailSender
	dispatcher MailDispatcher
	admin      config.AdminConfig
	senderName string
	validator  *validation.Validator
}

// NewContactService creates a new ContactService
func NewContactService(
	repo domain.ContactQueryRepository,
	sender domain.EmailSender,
	dispatcher MailDispatcher,
	admin config.AdminConfig,
	outreach config.OutreachConfig,
) ContactService {
	return &contactService{
		repo:       repo,
		sender:     sender,
		dispatcher: dispatcher,
		admin:      admin,
		senderName: outreach.SenderName,
		validator:  validation.NewValidator(),
	}
}

func (s *contactService) SubmitContactQuery(ctx context.Context, req *dto.ContactQueryRequest) (*dto.ContactQueryResponse, error) {
	if errs := s.validator.ValidateContactQuery(req); len(errs) > 0 {
		return nil, errs
	}

	query := &domain.ContactQuery{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, query); err != nil {
		return nil, domain.NewInternalError("Failed to save contact query", err)
	}
	logger.Get().Info("Contact query saved", zap.String("contactQueryID", query.ID))

	s.queueThankYou(query)
	s.queueAdminNotifications(query)

	return &dto.ContactQueryResponse{
		ID:      query.ID,
		Message: domain.ContactFlashMessage,
	}, nil
}

func (s *contactService) queueThankYou(query *domain.ContactQuery) {
	body, err := renderMail(contactThanksTemplate, contactThanksData{
		Salutation: salutation(query.Name, visitorFallbackSalutation),
		Message:    query.Message,
		SenderName: s.senderName,
	})
	if err != nil {
		logger.Get().Error("Failed to render thank-you mail", zap.String("contactQueryID", query.ID), zap.Error(err))
		return
	}
	s.queue("contact_thank_you", &domain.EmailMessage{
		To:             query.Email,
		ToName:         query.Name,
		Subject:        domain.ContactThankYouSubject,
		HTMLBody:       body,
		IdempotencyKey: uuid.NewString(),
	})
}

func (s *contactService) queueAdminNotifications(query *domain.ContactQuery) {
	if len(s.admin.Emails) == 0 {
		logger.Get().Warn("No admin emails configured, skipping contact notification", zap.String("contactQueryID", query.ID))
		return
	}

	body, err := renderMail(contactAdminTemplate, contactAdminData{
		Salutation: salutation(s.admin.ReceiverName, adminFallbackSalutation),
		Name:       query.Name,
		Email:      query.Email,
		Phone:      query.Phone,
		Message:    query.Message,
		ReceivedAt: query.CreatedAt.Format(time.RFC1123),
	})
	if err != nil {
		logger.Get().Error("Failed to render admin notification", zap.String("contactQueryID", query.ID), zap.Error(err))
		return
	}

	for _, address := range s.admin.Emails {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}
		s.queue("contact_notification", &domain.EmailMessage{
			To:             address,
			ToName:         s.admin.ReceiverName,
			Subject:        domain.ContactNotificationSubject,
			HTMLBody:       body,
			IdempotencyKey: uuid.NewString(),
		})
	}
}

func (s *contactService) queue(kind string, msg *domain.EmailMessage) {
	_, _, err := s.dispatcher.Submit(MailJob{
		Kind: kind,
		Run: func(ctx context.Context) error {
			return s.sender.Send(ctx, msg)
		},
	})
	if err != nil {
		logger.Get().Warn("Failed to queue contact mail", zap.String("kind", kind), zap.String("to", msg.To), zap.Error(err))
	}
}

func (s *contactService) ListContactQueries(ctx context.Context, page, pageSize int) (*dto.ContactQueryPageResponse, error) {
	window := domain.PageWindow{Page: page, PageSize: pageSize}.Normalize()

	queries, total, err := s.repo.List(ctx, window.Offset(), window.PageSize)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list contact queries", err)
	}

	resp := &dto.ContactQueryPageResponse{
		Items:      make([]dto.ContactQueryItem, 0, len(queries)),
		Page:       window.Page,
		PageSize:   window.PageSize,
		Total:      total,
		IsLastPage: window.IsLastPage(total),
	}
	for _, q := range queries {
		resp.Items = append(resp.Items, dto.ContactQueryItem{
			ID:        q.ID,
			Name:      q.Name,
			Email:     q.Email,
			Phone:     q.Phone,
			Message:   q.Message,
			CreatedAt: q.CreatedAt,
		})
	}
	return resp, nil
}
