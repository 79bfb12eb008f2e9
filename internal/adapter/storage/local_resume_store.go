package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"quiz-folio/internal/domain"
)

// LocalResumeStore reads <dir>/<key>.pdf from disk.
type LocalResumeStore struct {
	dir string
}

func NewLocalResumeStore(dir string) *LocalResumeStore {
	return &LocalResumeStore{dir: dir}
}

func (s *LocalResumeStore) Find(_ context.Context, key string) (*domain.Attachment, error) {
	name, err := objectName(key)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrResumeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", name, err)
	}

	return &domain.Attachment{
		Filename:    name,
		ContentType: resumeContentType,
		Content:     content,
	}, nil
}
