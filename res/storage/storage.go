package storage

import (
	"context"
	"time"
)

// DocumentStorage is the file store for reseller license documents.
type DocumentStorage interface {
	// Upload stores the payload under objectPath and returns the stored path
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)

	// SignedURL returns a short-lived URL for a private object
	SignedURL(ctx context.Context, objectPath string, expiration time.Duration) (string, error)

	// PublicURL returns the non-expiring public URL for an object
	PublicURL(objectPath string) string

	// Delete removes an object
	Delete(ctx context.Context, objectPath string) error
}
