package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("hello world, this is a test blob for crc32c")
	writeFile(t, tmpDir, "data-001.bin", data)
	writeFile(t, tmpDir, "nested/data-002.bin", []byte("second"))

	blob, err := store.Open(ctx, "data-001.bin")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	rc, err := blob.ReadRange(ctx, 13, 4)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "this", string(content))

	m, ok := blob.(Mappable)
	require.True(t, ok)
	mapped, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, mapped)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"data-001.bin", "nested/data-002.bin"}, names)

	names, err = store.List(ctx, "nested/")
	require.NoError(t, err)
	require.Equal(t, []string{"nested/data-002.bin"}, names)
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "missing.bin")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_ReadRange_Boundaries(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("0123456789")
	writeFile(t, tmpDir, "boundary.bin", data)

	blob, err := store.Open(ctx, "boundary.bin")
	require.NoError(t, err)
	defer blob.Close()

	// Full range
	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, _ := io.ReadAll(r)
	r.Close()
	require.True(t, bytes.Equal(data, content))

	// Clamped at the end
	r, err = blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	content, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "89", string(content))
	r.Close()

	// Past EOF
	_, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)

	_, err = blob.ReadAt(ctx, make([]byte, 4), -1)
	require.ErrorIs(t, err, ErrInvalidOffset)
}

func TestLocalStore_ListCancelled(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.bin", []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalStore(tmpDir).List(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}
