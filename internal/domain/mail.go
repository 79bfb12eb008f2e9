package domain

import (
	"context"
	"errors"
)

// ErrResumeNotFound is returned by a ResumeStore when no file exists for a key.
var ErrResumeNotFound = errors.New("resume not found")

// Attachment is a file carried by an email. Inline attachments are referenced
// from the HTML body as cid:<Filename>.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
	Inline      bool
}

// EmailMessage is a single HTML email to one recipient.
type EmailMessage struct {
	To             string
	ToName         string
	Subject        string
	HTMLBody       string
	Attachments    []Attachment
	IdempotencyKey string
}

// EmailSender delivers composed messages.
type EmailSender interface {
	Send(ctx context.Context, msg *EmailMessage) error
	Name() string
}

// ResumeStore resolves resume files by normalised company name.
type ResumeStore interface {
	// Find returns ErrResumeNotFound when key has no file.
	Find(ctx context.Context, key string) (*Attachment, error)
}

// QuestionGenerator drafts new questions for admin review.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, category Category, count int) ([]*Question, error)
}
