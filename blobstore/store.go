// Package blobstore abstracts where encoded dataset containers live: a
// local directory, process memory, or an object store (see the s3 and
// minio subpackages). Datasets are single immutable blobs; stores put them
// atomically and read them wholesale.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error that satisfies
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blob not found")

// BlobStore stores immutable dataset blobs by name.
type BlobStore interface {
	// Put writes a blob atomically. An existing blob with the same name
	// is replaced; readers never observe a partial write.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a whole blob.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
