package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/hupe1980/crc32c"
	"github.com/hupe1980/crc32c/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ListPrefix(t *testing.T) {
	assert.Equal(t, "root/dir/", (&Store{prefix: "root"}).listPrefix("dir/"))
	assert.Equal(t, "root/dir/", (&Store{prefix: "root/"}).listPrefix("dir/"))
	assert.Equal(t, "root/", (&Store{prefix: "root"}).listPrefix(""))
	assert.Equal(t, "dir/", (&Store{}).listPrefix("dir/"))
}

func TestMapError(t *testing.T) {
	assert.Equal(t, blobstore.ErrNotFound, mapError(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.Equal(t, blobstore.ErrNotFound, mapError(minio.ErrorResponse{Code: "NotFound"}))

	other := errors.New("boom")
	assert.Equal(t, other, mapError(other))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-crc32c"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	crc, err := store.Put(ctx, "test.txt", data)
	require.NoError(t, err)
	assert.Equal(t, crc32c.Value(data), crc)

	blob, err := store.Open(ctx, "test.txt")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	rc, err := blob.ReadRange(ctx, 6, 5)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "minio", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob.Close())

	res, err := blobstore.Verify(ctx, store, "test.txt", crc32c.New(), &crc)
	require.NoError(t, err)
	assert.Equal(t, crc, res.CRC)

	streamed, err := store.Upload(ctx, "stream.txt", bytes.NewReader([]byte("streamed data")))
	require.NoError(t, err)
	assert.Equal(t, crc32c.Value([]byte("streamed data")), streamed)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.txt")
	assert.Contains(t, names, "stream.txt")

	require.NoError(t, store.Delete(ctx, "test.txt"))
	require.NoError(t, store.Delete(ctx, "stream.txt"))

	_, err = store.Open(ctx, "test.txt")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
