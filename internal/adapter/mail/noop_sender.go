package mail

import (
	"context"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/logger"

	"go.uber.org/zap"
)

// NoopSender logs messages instead of delivering them. Used when mail is disabled.
type NoopSender struct{}

func (NoopSender) Name() string { return "noop" }

func (NoopSender) Send(_ context.Context, msg *domain.EmailMessage) error {
	logger.Get().Info("noop email send",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)))
	return nil
}
