// Package storage defines the opaque blob store behind uploaded images.
// Blobs are keyed by generated filename; content is never inspected.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound indicates no blob exists under the given name.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore stores uploaded images as opaque blobs.
type BlobStore interface {
	// Save writes the blob under name, overwriting any existing content.
	Save(ctx context.Context, name string, r io.Reader) error

	// Open returns a reader for the named blob, or ErrBlobNotFound.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes the named blob. Deleting a missing blob returns
	// ErrBlobNotFound.
	Delete(ctx context.Context, name string) error
}
