package mail

import (
	"fmt"
	"strings"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
)

const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderNoop   = "noop"
)

// NewEmailSender builds the sender selected by cfg.Provider.
func NewEmailSender(cfg config.MailConfig) (domain.EmailSender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderSMTP:
		return NewSMTPSender(cfg), nil
	case ProviderResend:
		return NewResendSender(cfg)
	case ProviderNoop, "":
		return NoopSender{}, nil
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", cfg.Provider)
	}
}
