package validation

import (
	"fmt"
	"regexp"
	"strings"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/util"
)

const (
	maxMessageLength = 4000
	maxGenerateCount = 20
	maxSubjectLength = 200
)

var emailRegex = regexp.MustCompile("^[a-zA-Z0-9_!#$%&'*+/=?`{|}~^.-]+@[a-zA-Z0-9.-]+$")

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsValidEmail reports whether s is an address the mailers accept.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ParseHREmails splits the comma-separated hrEmail field, checks every address and drops repeats.
func (v *Validator) ParseHREmails(raw string) ([]string, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	if strings.TrimSpace(raw) == "" {
		return nil, append(errors, domain.NewMissingFieldError("hrEmail"))
	}

	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for i, part := range parts {
		email := strings.TrimSpace(part)
		if !IsValidEmail(email) {
			errors = append(errors, domain.ValidationError{
				Field:   "hrEmail",
				Code:    domain.CodeInvalidFormat,
				Message: fmt.Sprintf("invalid hr Email at index : %d", i),
				Value:   email,
			})
			continue
		}
		// Addresses compare case-insensitively; the first spelling wins.
		key := strings.ToLower(email)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		emails = append(emails, email)
	}
	return emails, errors
}

// ValidateHRContactCreate checks a new HR contact. Every field except the subject override is required.
func (v *Validator) ValidateHRContactCreate(req *dto.HRContactRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.HRName) == "" {
		errors = append(errors, domain.NewMissingFieldError("hrName"))
	}
	if _, emailErrors := v.ParseHREmails(req.HREmail); len(emailErrors) > 0 {
		errors = append(errors, emailErrors...)
	}
	if strings.TrimSpace(req.Company) == "" {
		errors = append(errors, domain.NewMissingFieldError("company"))
	}
	if util.FirstNonBlank(req.JobTitle, req.Role) == "" {
		errors = append(errors, domain.ValidationError{
			Field:   "jobTitle",
			Code:    domain.CodeMissingField,
			Message: "both jobTitle and role can't be null or empty",
		})
	}
	if strings.TrimSpace(req.JobURL) == "" {
		errors = append(errors, domain.NewMissingFieldError("jobURL"))
	}
	if strings.TrimSpace(req.AdvertisedOn) == "" {
		errors = append(errors, domain.NewMissingFieldError("advertisedOn"))
	}
	errors = append(errors, validateSubject(req.EmailSubject)...)

	return errors
}

// ValidateHRContactUpdate checks only the fields an update sets.
func (v *Validator) ValidateHRContactUpdate(req *dto.HRContactRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.HREmail) != "" {
		if _, emailErrors := v.ParseHREmails(req.HREmail); len(emailErrors) > 0 {
			errors = append(errors, emailErrors...)
		}
	}
	errors = append(errors, validateSubject(req.EmailSubject)...)

	return errors
}

func validateSubject(subject string) domain.ValidationErrors {
	if len(subject) > maxSubjectLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError("emailSubject", len(subject), 0, maxSubjectLength)}
	}
	return nil
}

// ValidateContactQuery validates the contact form
func (v *Validator) ValidateContactQuery(req *dto.ContactQueryRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	}
	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !IsValidEmail(strings.TrimSpace(req.Email)) {
		errors = append(errors, domain.NewInvalidFormatError("email", req.Email))
	}
	if strings.TrimSpace(req.Message) == "" {
		errors = append(errors, domain.NewMissingFieldError("message"))
	} else if len(req.Message) > maxMessageLength {
		errors = append(errors, domain.NewOutOfRangeError("message", len(req.Message), 1, maxMessageLength))
	}

	return errors
}

// ValidateSubmitQuizRequest validates the answer sheet envelope. The encoded lists are decoded by the service.
func (v *Validator) ValidateSubmitQuizRequest(req *dto.SubmitQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	}
	if email := strings.TrimSpace(req.Email); email != "" && !IsValidEmail(email) {
		errors = append(errors, domain.NewInvalidFormatError("email", req.Email))
	}
	if strings.TrimSpace(req.UserOptedAnswers) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_opted_answers"))
	}
	if strings.TrimSpace(req.QuestionIDs) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_ids"))
	}

	return errors
}

// ValidateGenerateRequest validates an LLM draft request
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateQuestionsRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Category) == "" {
		errors = append(errors, domain.NewMissingFieldError("category"))
	}
	if req.Count <= 0 || req.Count > maxGenerateCount {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, 1, maxGenerateCount))
	}

	return errors
}

// ValidateID checks a path identifier
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if !util.IsULID(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, id)}
	}
	return nil
}
