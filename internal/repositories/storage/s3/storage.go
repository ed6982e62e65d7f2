package s3storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"signdesk/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const pkg = "s3Storage/"

const headTimeout = 30 * time.Second

type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Buckets         []string
}

// Storage talks to an S3-compatible object store.
type Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
}

func New(ctx context.Context, cfg Config) (*Storage, error) {
	op := pkg + "New"

	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("%s: access key id and secret are required", op)
	}

	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		cfg.AccessKeyID,
		cfg.SecretAccessKey,
		"",
	))

	client := s3.New(s3.Options{
		BaseEndpoint:     aws.String(cfg.Endpoint),
		Region:           cfg.Region,
		Credentials:      creds,
		UsePathStyle:     true,
		RetryMode:        aws.RetryModeAdaptive,
		RetryMaxAttempts: 3,
	})

	st := &Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
	}

	headCtx, cancel := context.WithTimeout(ctx, headTimeout)
	defer cancel()

	for _, bucket := range cfg.Buckets {
		if _, err := client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
			return nil, fmt.Errorf("%s: unable to access bucket %s: %w", op, bucket, err)
		}
	}

	return st, nil
}

func (s *Storage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	op := pkg + "Download"

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%s: %s/%s: %w", op, bucket, key, models.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}

	return data, nil
}

// Upload overwrites any existing object under key. Signed artifacts rely on
// this: retries land on the same deterministic key instead of piling up
// orphans.
func (s *Storage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	op := pkg + "Upload"

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	op := pkg + "SignedURL"

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return req.URL, nil
}

func (s *Storage) Delete(ctx context.Context, bucket, key string) error {
	op := pkg + "Delete"

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
