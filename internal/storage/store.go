// Package storage talks to the object store that holds document bytes.
// The API never uploads bytes itself; clients write objects directly and
// register the locator. The store is used to remove objects whose metadata
// row was deleted.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/saveone/server/internal/config"
)

// ObjectStore removes stored document objects.
type ObjectStore interface {
	Delete(ctx context.Context, key string) error
}

// NoopStore is used when no bucket is configured.
type NoopStore struct{}

// Delete does nothing.
func (NoopStore) Delete(context.Context, string) error { return nil }

// S3Store is an ObjectStore backed by any S3-compatible service.
type S3Store struct {
	client *s3.Client
	bucket string
}

// New returns an S3Store for cfg, or a NoopStore when cfg has no bucket.
func New(cfg config.S3Config) ObjectStore {
	if !cfg.Enabled() {
		return NoopStore{}
	}
	return NewS3Store(cfg)
}

// NewS3Store initializes the S3 client using static credentials and an
// optional custom endpoint (R2, MinIO).
func NewS3Store(cfg config.S3Config) *S3Store {
	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: cfg.Bucket}
}

// Delete removes the object at key. Deleting a missing object succeeds.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	key = ObjectKey(key)
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isMissingObject(err) {
			return nil
		}
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

// isMissingObject reports whether err says the key is already gone. AWS
// answers 204 for that, some S3-compatible services answer NoSuchKey.
func isMissingObject(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

// ObjectKey normalizes a stored document path into a bucket key.
func ObjectKey(path string) string {
	return strings.TrimLeft(strings.TrimSpace(path), "/")
}
