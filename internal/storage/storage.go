// Package storage defines the blob store used for uploaded images.
// Objects are addressed by generated keys; the concrete backend is
// S3-compatible and injected at startup.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no object exists under the given key.
var ErrNotFound = errors.New("object not found")

// Store is the interface for uploading, streaming, and deleting objects.
type Store interface {
	// Put streams data into the store and returns the generated object key.
	// size must be the exact byte count of reader.
	Put(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error)
	// Get opens the object for reading. The returned contentType is the one
	// recorded at upload time. Callers must close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	// Delete removes the object identified by key. Deleting a missing object
	// is not an error.
	Delete(ctx context.Context, key string) error
}
