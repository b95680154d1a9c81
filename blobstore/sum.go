package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/crc32c"
	"github.com/hupe1980/crc32c/internal/resource"
)

// DefaultChunkSize is the read size used when streaming a blob.
const DefaultChunkSize = 1 << 20

// SumOptions configures Sum and Verify.
type SumOptions struct {
	// ChunkSize is the buffer size for streamed reads.
	ChunkSize int
	// Controller throttles streamed reads. Nil means unlimited, which also
	// lets Mappable blobs be checksummed in one call.
	Controller *resource.Controller
	// Logger receives one record per blob. Nil disables logging.
	Logger *crc32c.Logger
	// Seed is the CRC the content extends, 0 for a fresh checksum.
	Seed uint32
}

// Result describes one checksummed blob.
type Result struct {
	Name string
	Size int64
	CRC  uint32
	// Stored is the checksum the store recorded, valid when HasStored.
	Stored    uint32
	HasStored bool
}

// Sum opens name in store and checksums its whole content with e.
func Sum(ctx context.Context, store BlobStore, name string, e crc32c.Engine, optFns ...func(*SumOptions)) (Result, error) {
	opts := sumOptions(optFns)

	b, err := store.Open(ctx, name)
	if err != nil {
		err = fmt.Errorf("open %s: %w", name, err)
		opts.Logger.LogChecksum(ctx, name, 0, 0, err)
		return Result{Name: name}, err
	}
	defer b.Close()

	res := Result{Name: name, Size: b.Size()}
	if r, ok := b.(ChecksumReporter); ok {
		res.Stored, res.HasStored = r.StoredChecksum()
	}

	res.CRC, err = sumBlob(ctx, b, e, opts)
	if err != nil {
		err = fmt.Errorf("checksum %s: %w", name, err)
	}
	opts.Logger.LogChecksum(ctx, name, res.Size, res.CRC, err)
	return res, err
}

// SumBlob checksums the whole content of an open blob.
func SumBlob(ctx context.Context, b Blob, e crc32c.Engine, optFns ...func(*SumOptions)) (uint32, error) {
	return sumBlob(ctx, b, e, sumOptions(optFns))
}

// Verify checksums name and compares it with expected. When expected is
// nil the store's recorded checksum is used; ErrNoStoredChecksum is
// returned if there is none.
func Verify(ctx context.Context, store BlobStore, name string, e crc32c.Engine, expected *uint32, optFns ...func(*SumOptions)) (Result, error) {
	opts := sumOptions(optFns)

	res, err := Sum(ctx, store, name, e, optFns...)
	if err != nil {
		return res, err
	}

	var want uint32
	switch {
	case expected != nil:
		want = *expected
	case res.HasStored:
		want = res.Stored
	default:
		err = fmt.Errorf("%s: %w", name, ErrNoStoredChecksum)
		opts.Logger.LogVerify(ctx, name, err)
		return res, err
	}

	err = crc32c.VerifyChecksum(name, want, res.CRC)
	opts.Logger.LogVerify(ctx, name, err)
	return res, err
}

// ErrNoStoredChecksum is returned by Verify when neither an expected value
// nor a stored checksum is available.
var ErrNoStoredChecksum = errors.New("blobstore: no stored checksum")

func sumOptions(optFns []func(*SumOptions)) SumOptions {
	opts := SumOptions{ChunkSize: DefaultChunkSize}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Logger == nil {
		opts.Logger = crc32c.NoopLogger()
	}
	return opts
}

func sumBlob(ctx context.Context, b Blob, e crc32c.Engine, opts SumOptions) (uint32, error) {
	size := b.Size()
	if size == 0 {
		return opts.Seed, nil
	}

	if m, ok := b.(Mappable); ok && opts.Controller == nil {
		data, err := m.Bytes()
		if err == nil {
			return e.Update(opts.Seed, data), nil
		}
	}

	rc, err := b.ReadRange(ctx, 0, size)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	h := crc32c.NewEngineHash(e, opts.Seed)
	n, err := io.CopyBuffer(h, resource.NewReader(ctx, rc, opts.Controller), make([]byte, opts.ChunkSize))
	if err != nil {
		return 0, err
	}
	if n != size {
		return 0, fmt.Errorf("short read: got %d of %d bytes: %w", n, size, io.ErrUnexpectedEOF)
	}
	return h.Sum32(), nil
}
