package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/config"
)

// MinIOStorage keeps talent and content media in a single bucket
type MinIOStorage struct {
	client *minio.Client
	bucket string
	scheme string
}

// NewMinIOStorage connects to MinIO and creates the bucket when missing
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("MinIO bucket created")
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &MinIOStorage{client: client, bucket: cfg.Bucket, scheme: scheme}, nil
}

// Upload stores data under key and returns its public URL
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return fmt.Sprintf("%s://%s/%s/%s", s.scheme, s.client.EndpointURL().Host, s.bucket, key), nil
}

func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// DeleteByPrefix removes every object under prefix, e.g. talents/<id>/
func (s *MinIOStorage) DeleteByPrefix(ctx context.Context, prefix string) error {
	listed := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	objectsCh := make(chan minio.ObjectInfo)
	listErr := make(chan error, 1)
	go func() {
		defer close(objectsCh)
		for object := range listed {
			if object.Err != nil {
				listErr <- object.Err
				return
			}
			objectsCh <- object
		}
	}()

	removed := 0
	for rmErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil {
			return fmt.Errorf("failed to remove %s: %w", rmErr.ObjectName, rmErr.Err)
		}
		removed++
	}

	select {
	case err := <-listErr:
		return fmt.Errorf("failed to list objects: %w", err)
	default:
	}

	log.Debug().Str("prefix", prefix).Msg("Objects removed by prefix")
	return nil
}
