package s3

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/crc32c"
	"github.com/hupe1980/crc32c/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	client := s3.NewFromConfig(cfg)

	prefix := fmt.Sprintf("test-crc32c-%d/", time.Now().UnixNano())
	store := NewStore(client, bucket, prefix)

	t.Run("Put and Verify", func(t *testing.T) {
		data := make([]byte, 1024*1024)
		_, _ = rand.Read(data)

		crc, err := store.Put(ctx, "put.blob", data)
		require.NoError(t, err)

		res, err := blobstore.Verify(ctx, store, "put.blob", crc32c.New(), nil)
		require.NoError(t, err)
		assert.Equal(t, crc, res.CRC)
		assert.True(t, res.HasStored)
	})

	t.Run("Multipart Upload", func(t *testing.T) {
		data := make([]byte, 20*1024*1024)
		_, _ = rand.Read(data)

		crc, err := store.Upload(ctx, "multi.blob", bytes.NewReader(data))
		require.NoError(t, err)

		res, err := blobstore.Verify(ctx, store, "multi.blob", crc32c.New(), &crc)
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), res.Size)
	})

	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"multi.blob", "put.blob"}, names)
	})
}
