package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/hupe1980/crc32c"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidOffset is returned by Blob.ReadAt for negative offsets.
var ErrInvalidOffset = errors.New("blobstore: negative offset")

// BlobStore provides read access to named blobs.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// List returns the names of all blobs starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes starting at off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a reader for up to length bytes starting at off.
	// Offsets at or past the end return io.EOF.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs whose bytes are directly
// addressable, such as memory-mapped files.
type Mappable interface {
	// Bytes returns the underlying byte slice, valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ChecksumReporter is an optional interface for Blobs whose store records
// a full-object CRC32C.
type ChecksumReporter interface {
	// StoredChecksum returns the recorded checksum and whether one exists.
	StoredChecksum() (uint32, bool)
}

// ParseStoredChecksum decodes a base64 CRC32C as object stores report it.
// Multipart composite values ("<base64>-<parts>") are checksums of part
// checksums and are rejected.
func ParseStoredChecksum(v string) (uint32, bool) {
	if v == "" || strings.Contains(v, "-") {
		return 0, false
	}
	crc, err := crc32c.DecodeBase64(v)
	if err != nil {
		return 0, false
	}
	return crc, true
}
