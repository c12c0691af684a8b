package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is read access to named immutable resources.
type BlobStore interface {
	// Open opens a blob for reading. The caller closes the returned reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
