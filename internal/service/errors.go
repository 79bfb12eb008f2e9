package service

import (
	"errors"

	"quiz-folio/internal/domain"
)

// asDomainError passes domain errors through and wraps anything else as internal.
func asDomainError(err error, message string) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewInternalError(message, err)
}
