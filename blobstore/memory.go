package blobstore

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/crc32c"
)

// MemoryStore is an in-memory BlobStore implementation for testing.
// Put records the CRC32C of each blob so it behaves like an object store
// with stored checksums. Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryEntry
}

type memoryEntry struct {
	data []byte
	crc  uint32
}

// NewMemoryStore creates a new in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string]memoryEntry),
	}
}

// Open opens a blob for reading.
func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &memoryBlob{data: e.data, crc: e.crc}, nil
}

// Put stores a copy of data and records its checksum.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	copied := bytes.Clone(data)
	crc := crc32c.Value(copied)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = memoryEntry{data: copied, crc: crc}
	return nil
}

// Tamper overwrites a blob's bytes while keeping its stored checksum,
// simulating silent corruption.
func (m *MemoryStore) Tamper(name string, data []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.blobs[name]
	if !ok {
		return false
	}
	e.data = bytes.Clone(data)
	m.blobs[name] = e
	return true
}

// Delete removes a blob.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, name)
	return nil
}

// List returns all blobs matching the prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// memoryBlob shares the entry's bytes; entries are replaced, never mutated.
type memoryBlob struct {
	data []byte
	crc  uint32
}

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *memoryBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || off >= int64(len(b.data)) {
		return nil, io.EOF
	}
	end := min(off+length, int64(len(b.data)))
	return io.NopCloser(bytes.NewReader(b.data[off:end])), nil
}

func (b *memoryBlob) Close() error {
	return nil
}

func (b *memoryBlob) Size() int64 {
	return int64(len(b.data))
}

func (b *memoryBlob) Bytes() ([]byte, error) {
	return b.data, nil
}

func (b *memoryBlob) StoredChecksum() (uint32, bool) {
	return b.crc, true
}
