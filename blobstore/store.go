package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies `errors.Is(err, ErrNotFound)`.
var ErrNotFound = os.ErrNotExist

// Blob is a read-only handle to a stored object.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// BlobStore gives read access to stored objects.
type BlobStore interface {
	// Open opens a blob for reading. The context bounds every read made
	// through the returned Blob.
	Open(ctx context.Context, name string) (Blob, error)
	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// WritableStore stores whole objects.
type WritableStore interface {
	// Put writes a blob, replacing any existing blob of the same name.
	Put(ctx context.Context, name string, data []byte) error
}

// Store is a readable and writable store.
type Store interface {
	BlobStore
	WritableStore
}
