package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
)

const (
	SourceLocal = "local"
	SourceMinio = "minio"

	resumeExt         = ".pdf"
	resumeContentType = "application/pdf"
)

// NewResumeStore builds the store selected by cfg.Source.
func NewResumeStore(ctx context.Context, cfg config.ResumeConfig) (domain.ResumeStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case SourceLocal, "":
		return NewLocalResumeStore(cfg.Dir), nil
	case SourceMinio:
		return NewMinioResumeStore(ctx, cfg.Minio)
	default:
		return nil, fmt.Errorf("unsupported resume source: %s", cfg.Source)
	}
}

// objectName maps a normalised company key to its file name. Path separators are replaced.
func objectName(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || key == "." || key == ".." {
		return "", domain.ErrResumeNotFound
	}
	key = strings.NewReplacer("/", "_", "\\", "_").Replace(key)
	if strings.HasSuffix(key, resumeExt) {
		return key, nil
	}
	return key + resumeExt, nil
}

// FindWithFallback looks up key and falls back to defaultKey on a miss.
func FindWithFallback(ctx context.Context, store domain.ResumeStore, key, defaultKey string) (*domain.Attachment, error) {
	att, err := store.Find(ctx, key)
	if err == nil {
		return att, nil
	}
	if !errors.Is(err, domain.ErrResumeNotFound) {
		return nil, err
	}
	return store.Find(ctx, defaultKey)
}
