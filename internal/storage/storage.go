// Package storage provides object storage for uploaded images backed by
// an S3-compatible bucket. Stored blobs are publicly readable and
// addressed by URL.
package storage

import (
	"context"
	"errors"

	"github.com/JaimeStill/live-gallery/internal/lifecycle"
)

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrInvalidURL indicates a URL that does not address this bucket.
	ErrInvalidURL = errors.New("storage: invalid object url")
)

// System defines the object storage operations interface.
type System interface {
	// Key composes a collision-free storage key for an uploaded file,
	// preserving its extension.
	Key(filename string) string

	// Store uploads data under the given key with the given content
	// type and returns the public URL of the stored object.
	Store(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the object at the given key. Deleting a missing
	// key is not an error (idempotent).
	Delete(ctx context.Context, key string) error

	// KeyFromURL extracts the storage key from a public URL previously
	// returned by Store. Returns ErrInvalidURL for foreign URLs.
	KeyFromURL(url string) (string, error)

	// Start verifies bucket access and registers lifecycle hooks.
	Start(lc *lifecycle.Coordinator) error
}
