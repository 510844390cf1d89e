package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/JaimeStill/live-gallery/internal/config"
	"github.com/JaimeStill/live-gallery/internal/lifecycle"
)

const (
	maxRetries     = 3
	initialBackoff = 200 * time.Millisecond
)

// S3System implements System against any S3-compatible endpoint.
type S3System struct {
	client   *s3.Client
	bucket   string
	endpoint string
	prefix   string
	logger   *slog.Logger
}

// NewS3 constructs an S3System from storage configuration.
func NewS3(cfg *config.StorageConfig, logger *slog.Logger) (*S3System, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &cfg.Endpoint
		o.UsePathStyle = true
	})

	return &S3System{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		prefix:   strings.Trim(cfg.KeyPrefix, "/"),
		logger:   logger.With("system", "storage"),
	}, nil
}

// Start verifies the bucket is reachable before the server accepts traffic.
func (s *S3System) Start(lc *lifecycle.Coordinator) error {
	ctx, cancel := context.WithTimeout(lc.Context(), 10*time.Second)
	defer cancel()

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: &s.bucket,
	})
	if err != nil {
		return fmt.Errorf("head bucket %q: %w", s.bucket, err)
	}

	s.logger.Info("storage ready", "bucket", s.bucket, "endpoint", s.endpoint)
	return nil
}

func (s *S3System) Key(filename string) string {
	suffix := make([]byte, 8)
	rand.Read(suffix)

	name := fmt.Sprintf("%d-%s%s",
		time.Now().UnixMilli(),
		hex.EncodeToString(suffix),
		strings.ToLower(path.Ext(filename)),
	)

	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *S3System) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	err := s.retry(ctx, "put", func() error {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      &s.bucket,
			Key:         &key,
			Body:        bytes.NewReader(data),
			ContentType: &contentType,
			ACL:         types.ObjectCannedACLPublicRead,
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("store %q: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key), nil
}

func (s *S3System) Delete(ctx context.Context, key string) error {
	err := s.retry(ctx, "delete", func() error {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &s.bucket,
			Key:    &key,
		})
		return err
	})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

func (s *S3System) KeyFromURL(url string) (string, error) {
	base := fmt.Sprintf("%s/%s/", s.endpoint, s.bucket)

	key, ok := strings.CutPrefix(url, base)
	if !ok || key == "" {
		return "", ErrInvalidURL
	}

	return key, nil
}

// retry runs op with exponential backoff. Not-found and context errors
// are surfaced immediately.
func (s *S3System) retry(ctx context.Context, op string, fn func() error) error {
	var err error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		if isNotFound(err) || ctx.Err() != nil {
			return err
		}

		if attempt < maxRetries {
			s.logger.Warn("storage operation failed, retrying",
				"op", op,
				"attempt", attempt,
				"error", err,
			)

			select {
			case <-time.After(backoff):
				backoff *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return err
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound"
	}

	return false
}
