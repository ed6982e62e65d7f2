package storage

import (
	"context"
	"time"
)

// ObjectStorage is the object-store surface the services depend on.
// Bucket is always named explicitly: originals and signed artifacts are
// kept apart.
type ObjectStorage interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error
	SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}
