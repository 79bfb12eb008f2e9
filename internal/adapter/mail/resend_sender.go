package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/logger"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

const resendMaxAttempts = 3

// ResendSender delivers mail through the Resend REST API.
type ResendSender struct {
	from   string
	client *resend.Client
}

func NewResendSender(cfg config.MailConfig) (*ResendSender, error) {
	if cfg.Resend.APIKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mail from is required")
	}
	return newResendSender(resend.NewClient(cfg.Resend.APIKey), cfg.From, cfg.FromName), nil
}

func newResendSender(client *resend.Client, from, fromName string) *ResendSender {
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, from)
	}
	return &ResendSender{from: from, client: client}
}

func (s *ResendSender) Name() string { return "resend" }

// Send retries rate limits and transient network errors up to three attempts.
func (s *ResendSender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTMLBody,
	}
	for _, att := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Content:     att.Content,
			Filename:    att.Filename,
			ContentType: att.ContentType,
		})
	}

	options := &resend.SendEmailOptions{}
	if key := strings.TrimSpace(msg.IdempotencyKey); key != "" {
		options.IdempotencyKey = key
	}

	var lastErr error
	for attempt := 0; attempt < resendMaxAttempts; attempt++ {
		sent, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			logger.Get().Info("Email sent",
				zap.String("provider", s.Name()),
				zap.String("to", msg.To),
				zap.String("resend_id", sent.Id))
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			logger.Get().Warn("Resend send failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
