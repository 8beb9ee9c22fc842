package port

import (
	"context"
	"time"

	"carte/internal/domain"
)

// StoredObject describes an archived image.
type StoredObject struct {
	Key      string
	Location string
	ETag     string
}

// ImageArchive stores scanned menu pages in object storage. Keys are
// relative to the configured bucket.
type ImageArchive interface {
	Put(ctx context.Context, key string, img domain.ImagePayload) (*StoredObject, error)
	Get(ctx context.Context, key string) (*domain.ImagePayload, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
