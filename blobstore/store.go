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

// Store is an abstraction for storing and retrieving immutable data
// blobs, such as mesh snapshots.
type Store interface {
	// Put writes a blob atomically, replacing any existing blob of the
	// same name.
	Put(ctx context.Context, name string, data []byte) error

	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs that support zero-copy
// access to their bytes.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll reads the full contents of a blob, using the zero-copy path
// when available. The returned slice must not be retained past Close
// for Mappable blobs.
func ReadAll(b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		return m.Bytes()
	}
	data := make([]byte, b.Size())
	if _, err := b.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}
