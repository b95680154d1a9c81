package crc32c

import (
	"hash"
	"io"
)

// digest is a hash.Hash32 running one engine.
type digest struct {
	seed   uint32
	crc    uint32
	engine Engine
}

// NewHash returns a hash.Hash32 computing CRC-32C on the hardware engine
// when useHardware is set and on the software engine otherwise.
func NewHash(useHardware bool) hash.Hash32 {
	return NewEngineHash(EngineFor(useHardware), 0)
}

// NewEngineHash returns a hash.Hash32 that runs e, starting from seed.
// Reset returns the hash to seed.
func NewEngineHash(e Engine, seed uint32) hash.Hash32 {
	if e == nil {
		e = EngineFor(IsHardwareSupported())
	}
	return &digest{seed: seed, crc: seed, engine: e}
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.crc = d.seed }

func (d *digest) Write(p []byte) (int, error) {
	d.crc = d.engine.Update(d.crc, p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return d.crc }

// Sum appends the checksum in big-endian order, matching hash/crc32.
func (d *digest) Sum(in []byte) []byte {
	s := d.crc
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// Writer wraps an io.Writer and computes a running CRC-32C of what passes
// through it.
type Writer struct {
	w    io.Writer
	hash hash.Hash32
}

// NewWriter creates a new checksumming writer using e.
func NewWriter(w io.Writer, e Engine) *Writer {
	return &Writer{
		w:    w,
		hash: NewEngineHash(e, 0),
	}
}

// Write implements io.Writer. Only bytes the underlying writer accepted
// are checksummed.
func (cw *Writer) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		_, _ = cw.hash.Write(p[:n])
	}
	return n, err
}

// Sum returns the current checksum value.
func (cw *Writer) Sum() uint32 {
	return cw.hash.Sum32()
}

// Reset resets the checksum to its initial state.
func (cw *Writer) Reset() {
	cw.hash.Reset()
}

// Reader wraps an io.Reader and computes a running CRC-32C.
type Reader struct {
	r    io.Reader
	hash hash.Hash32
	n    int64
}

// NewReader creates a new checksumming reader using e.
func NewReader(r io.Reader, e Engine) *Reader {
	return &Reader{
		r:    r,
		hash: NewEngineHash(e, 0),
	}
}

// Read implements io.Reader.
func (cr *Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		_, _ = cr.hash.Write(p[:n])
		cr.n += int64(n)
	}
	return n, err
}

// Sum returns the current checksum value.
func (cr *Reader) Sum() uint32 {
	return cr.hash.Sum32()
}

// Count returns the number of bytes read so far.
func (cr *Reader) Count() int64 {
	return cr.n
}

// Reset resets the checksum and byte count.
func (cr *Reader) Reset() {
	cr.hash.Reset()
	cr.n = 0
}

// Verify checks if the computed checksum matches the expected value.
func (cr *Reader) Verify(expected uint32) error {
	return VerifyChecksum("", expected, cr.Sum())
}
