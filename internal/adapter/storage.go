package adapter

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/carelinkhq/carelink-backend/internal/config"
)

// StorageAdapter removes orphaned media objects after content soft-deletes.
// The content row is the source of truth; object deletion is best-effort
// and never blocks or rolls back the row update.
type StorageAdapter struct {
	client *s3.Client
	bucket string
}

func NewStorageAdapter(cfg *config.Config) *StorageAdapter {
	if !cfg.S3Enabled() {
		return &StorageAdapter{}
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
	)
	if err != nil {
		slog.Error("failed to load AWS SDK config", "error", err)
		return &StorageAdapter{}
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &StorageAdapter{client: client, bucket: cfg.S3Bucket}
}

// CleanupObject deletes the object behind rawURL, logging failures instead
// of returning them.
func (s *StorageAdapter) CleanupObject(rawURL string) {
	if s.client == nil || rawURL == "" {
		return
	}

	key := objectKey(rawURL)
	if key == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		slog.Error("media cleanup failed", "key", key, "error", err)
		return
	}
	slog.Info("media object removed", "key", key)
}

// objectKey extracts the bucket key from a stored media URL.
func objectKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
