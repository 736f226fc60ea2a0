// Package blob defines the interface for binary media storage.
// Swap implementations by changing the concrete type injected at startup —
// GridFS is the default; a MinIO-backed store and an in-memory store implement
// the same interface.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned when no blob exists for the given identifier.
var ErrNotFound = errors.New("blob not found")

// ErrInvalidID is returned when an identifier does not parse as a valid blob
// identifier for the configured backend. It is returned before any store
// round-trip is attempted.
var ErrInvalidID = errors.New("invalid blob identifier")

// Info carries the metadata stored alongside a blob.
type Info struct {
	Filename    string
	ContentType string
	Size        int64
}

// Store is the interface for uploading and retrieving media blobs.
type Store interface {
	// Upload writes the stream fully to the store, records info alongside it,
	// and returns the new blob's identifier.
	Upload(ctx context.Context, r io.Reader, info Info) (string, error)
	// Download opens a readable stream over the full blob content together
	// with its stored metadata. The caller must close the stream on every
	// exit path.
	Download(ctx context.Context, id string) (io.ReadCloser, *Info, error)
	// Exists reports whether a blob with the identifier is currently present.
	Exists(ctx context.Context, id string) (bool, error)
	// Delete removes the blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, id string) error
}

// StoreError wraps an I/O failure against a blob backend.
type StoreError struct {
	Backend string
	Op      string
	ID      string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("blob %s failed for %q on backend %s: %v", e.Op, e.ID, e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
