package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/hupe1980/crc32c"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "b/two", []byte("123456789")))
	require.NoError(t, store.Put(ctx, "a/one", []byte("abc")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/one", "b/two"}, names)

	blob, err := store.Open(ctx, "b/two")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(9), blob.Size())

	stored, ok := blob.(ChecksumReporter).StoredChecksum()
	require.True(t, ok)
	assert.Equal(t, uint32(0xE3069283), stored)

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 7)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "89", string(buf[:n]))

	require.NoError(t, store.Delete(ctx, "b/two"))
	_, err = store.Open(ctx, "b/two")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_PutCopiesInput(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'z'

	blob, err := store.Open(ctx, "x")
	require.NoError(t, err)

	got, err := blob.(Mappable).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryStore_TamperKeepsStoredChecksum(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "x", []byte("abc")))
	require.True(t, store.Tamper("x", []byte("abd")))
	assert.False(t, store.Tamper("missing", nil))

	blob, err := store.Open(ctx, "x")
	require.NoError(t, err)

	stored, _ := blob.(ChecksumReporter).StoredChecksum()
	assert.Equal(t, crc32c.Value([]byte("abc")), stored)
}

func TestMemoryStore_ReadAtNegativeOffset(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "x", []byte("123456789")))

	blob, err := store.Open(ctx, "x")
	require.NoError(t, err)

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, -1)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	_, err = blob.ReadRange(ctx, -1, 4)
	assert.ErrorIs(t, err, io.EOF)
}
