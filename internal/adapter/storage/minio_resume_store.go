package storage

import (
	"context"
	"fmt"
	"io"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioResumeStore reads <bucket>/<key>.pdf from an S3-compatible object store.
type MinioResumeStore struct {
	client *minio.Client
	bucket string
}

func NewMinioResumeStore(ctx context.Context, cfg config.MinioConfig) (*MinioResumeStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check resume bucket: %w", err)
	}
	if !exists {
		logger.Get().Warn("Resume bucket does not exist, every lookup will miss", zap.String("bucket", cfg.Bucket))
	}

	return &MinioResumeStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioResumeStore) Find(ctx context.Context, key string) (*domain.Attachment, error) {
	name, err := objectName(key)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get resume %s: %w", name, err)
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to read resume %s: %w", name, err)
	}

	return &domain.Attachment{
		Filename:    name,
		ContentType: resumeContentType,
		Content:     content,
	}, nil
}
