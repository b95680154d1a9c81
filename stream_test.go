package crc32c

import (
	"bytes"
	"errors"
	"hash/crc32"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	for _, e := range bothEngines {
		t.Run(e.name, func(t *testing.T) {
			h := NewHash(e.useHardware)
			assert.Equal(t, Size, h.Size())
			assert.Equal(t, 1, h.BlockSize())

			_, _ = h.Write([]byte("1234"))
			_, _ = h.Write([]byte("56789"))
			assert.Equal(t, uint32(0xE3069283), h.Sum32())
			assert.Equal(t, []byte{0xAA, 0xE3, 0x06, 0x92, 0x83}, h.Sum([]byte{0xAA}))

			std := crc32.New(crc32.MakeTable(crc32.Castagnoli))
			_, _ = std.Write([]byte("123456789"))
			assert.Equal(t, std.Sum(nil), h.Sum(nil))

			h.Reset()
			assert.Equal(t, uint32(0), h.Sum32())
		})
	}
}

func TestEngineHash_Seed(t *testing.T) {
	prefix := Calculate(false, []byte("1234"))
	h := NewEngineHash(SoftwareEngine(), prefix)
	_, _ = h.Write([]byte("56789"))
	assert.Equal(t, uint32(0xE3069283), h.Sum32())

	h.Reset()
	assert.Equal(t, prefix, h.Sum32())
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, HardwareEngine())

	_, err := io.Copy(w, strings.NewReader("123456789"))
	require.NoError(t, err)
	assert.Equal(t, "123456789", buf.String())
	assert.Equal(t, uint32(0xE3069283), w.Sum())

	w.Reset()
	assert.Equal(t, uint32(0), w.Sum())
}

type shortWriter struct{ limit int }

func (s *shortWriter) Write(p []byte) (int, error) {
	if len(p) > s.limit {
		return s.limit, io.ErrShortWrite
	}
	return len(p), nil
}

func TestWriter_ShortWrite(t *testing.T) {
	w := NewWriter(&shortWriter{limit: 4}, SoftwareEngine())
	n, err := w.Write([]byte("123456789"))
	assert.Equal(t, 4, n)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, Calculate(false, []byte("1234")), w.Sum())
}

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader("123456789"), SoftwareEngine())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "123456789", string(data))
	assert.Equal(t, int64(9), r.Count())

	require.NoError(t, r.Verify(0xE3069283))

	err = r.Verify(1)
	require.Error(t, err)
	assert.True(t, IsChecksumMismatch(err))
	assert.False(t, IsChecksumMismatch(errors.New("other")))

	r.Reset()
	assert.Equal(t, int64(0), r.Count())
	assert.Equal(t, uint32(0), r.Sum())
}
