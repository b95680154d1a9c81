// Package decode unwraps compressed inputs so their content, not their
// encoding, is checksummed.
package decode

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies a compression container.
type Format uint8

const (
	// None passes input through unchanged.
	None Format = iota
	// Gzip is RFC 1952 gzip.
	Gzip
	// Zstd is a Zstandard frame stream.
	Zstd
	// LZ4 is the LZ4 frame format.
	LZ4
	// Snappy is the Snappy framing format.
	Snappy
)

// ErrUnknownFormat is returned by ParseFormat and NewReader for unsupported
// formats.
var ErrUnknownFormat = errors.New("decode: unknown format")

var magics = []struct {
	format Format
	magic  []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{Snappy, []byte("\xff\x06\x00\x00sNaPpY")},
}

// SniffLen is the prefix length Sniff needs to recognise every format.
const SniffLen = 10

func (f Format) String() string {
	switch f {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Snappy:
		return "snappy"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat parses a format name as printed by String. "zst", "gz" and
// "sz" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "none", "raw":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	case "snappy", "sz":
		return Snappy, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Detect guesses the format from a file name's extension.
func Detect(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".gzip", ".tgz":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	case ".sz", ".snappy":
		return Snappy
	}
	return None
}

// Sniff identifies the format from the first bytes of a stream.
func Sniff(prefix []byte) Format {
	for _, m := range magics {
		if bytes.HasPrefix(prefix, m.magic) {
			return m.format
		}
	}
	return None
}

// NewReader returns a reader producing the decompressed content of r.
// Closing it releases decoder state but does not close r.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

// NewAutoReader sniffs r and decompresses it if it starts with a known
// magic number. It returns the detected format.
func NewAutoReader(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(SniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, err
	}

	f := Sniff(prefix)
	rc, err := NewReader(br, f)
	if err != nil {
		return nil, None, err
	}
	return rc, f, nil
}
