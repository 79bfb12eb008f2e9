package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/logger"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

var errSMTPNotConfigured = errors.New("smtp user, host and port are required")

type sendFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

// SMTPSender delivers mail through an SMTP relay with PLAIN auth.
type SMTPSender struct {
	cfg      config.SMTPConfig
	from     string
	fromName string
	send     sendFunc
}

// NewSMTPSender creates an SMTP sender. Implicit TLS is used when cfg.SMTP.TLSEnabled is set.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	send := smtp.SendMail
	if cfg.SMTP.TLSEnabled {
		send = smtp.SendMailTLS
	}
	from := cfg.From
	if from == "" {
		from = cfg.SMTP.User
	}
	return &SMTPSender{
		cfg:      cfg.SMTP,
		from:     from,
		fromName: cfg.FromName,
		send:     send,
	}
}

func (s *SMTPSender) Name() string { return "smtp" }

// Send fails with a mail delivery error when the relay is not configured.
func (s *SMTPSender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	log := logger.Get().With(zap.String("to", msg.To), zap.String("subject", msg.Subject))
	if s.cfg.User == "" || s.cfg.Host == "" || s.cfg.Port == "" {
		log.Warn("Email not sent, smtp client is not configured")
		return domain.NewMailDeliveryError("Email not sent, smtp client is not configured", errSMTPNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := composeMIME(s.from, s.fromName, msg)
	if err != nil {
		return err
	}

	auth := sasl.NewPlainClient("", s.cfg.User, s.cfg.Password)
	if err := s.send(s.cfg.Host+":"+s.cfg.Port, auth, s.from, []string{msg.To}, bytes.NewReader(body)); err != nil {
		log.Error("Failed to send email", zap.Error(err))
		return fmt.Errorf("smtp send failed: %w", err)
	}

	log.Info("Email sent", zap.String("provider", s.Name()))
	return nil
}
