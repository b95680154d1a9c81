// Package textenc checksums text by its UTF-8 form, whatever encoding it
// arrives in.
//
// A string checksum is defined over UTF-8 bytes. Text stored as UTF-16 or
// in a legacy code page is transcoded first so that equal text yields equal
// checksums regardless of its on-disk encoding.
package textenc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/hupe1980/crc32c"
)

// Encoding names a source text encoding.
type Encoding uint8

const (
	// UTF8 input is checksummed as is, with invalid sequences replaced by
	// U+FFFD.
	UTF8 Encoding = iota
	// UTF16LE is little-endian UTF-16. A leading BOM overrides the byte order.
	UTF16LE
	// UTF16BE is big-endian UTF-16. A leading BOM overrides the byte order.
	UTF16BE
	// Latin1 is ISO 8859-1.
	Latin1
	// CP437 is the original IBM PC code page.
	CP437
	// ShiftJIS is the Japanese Shift JIS encoding.
	ShiftJIS
)

// ErrUnknownEncoding is returned by ParseEncoding.
var ErrUnknownEncoding = errors.New("textenc: unknown encoding")

var names = [...]string{
	UTF8:     "utf-8",
	UTF16LE:  "utf-16le",
	UTF16BE:  "utf-16be",
	Latin1:   "latin1",
	CP437:    "cp437",
	ShiftJIS: "shift_jis",
}

func (e Encoding) String() string {
	if int(e) < len(names) {
		return names[e]
	}
	return fmt.Sprintf("Encoding(%d)", uint8(e))
}

// ParseEncoding parses an encoding name. Matching ignores case, dashes
// and underscores, so "UTF-16LE", "utf16le" and "utf_16le" are equal.
func ParseEncoding(s string) (Encoding, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(s))
	switch key {
	case "", "utf8":
		return UTF8, nil
	case "utf16le", "utf16":
		return UTF16LE, nil
	case "utf16be":
		return UTF16BE, nil
	case "latin1", "iso88591":
		return Latin1, nil
	case "cp437", "ibm437":
		return CP437, nil
	case "shiftjis", "sjis":
		return ShiftJIS, nil
	}
	return UTF8, fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}

func (e Encoding) decoder() (transform.Transformer, error) {
	switch e {
	case UTF8:
		return unicode.UTF8.NewDecoder(), nil
	case UTF16LE:
		return unicode.BOMOverride(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()), nil
	case UTF16BE:
		return unicode.BOMOverride(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()), nil
	case Latin1:
		return charmap.ISO8859_1.NewDecoder(), nil
	case CP437:
		return charmap.CodePage437.NewDecoder(), nil
	case ShiftJIS:
		return japanese.ShiftJIS.NewDecoder(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, e)
}

// ToUTF8 transcodes text to UTF-8.
func ToUTF8(text []byte, enc Encoding) ([]byte, error) {
	dec, err := enc.decoder()
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(dec, text)
	if err != nil {
		return nil, fmt.Errorf("textenc: decode %s: %w", enc, err)
	}
	return out, nil
}

// NewReader returns a reader yielding the UTF-8 form of r.
func NewReader(r io.Reader, enc Encoding) (io.Reader, error) {
	dec, err := enc.decoder()
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, dec), nil
}

// Checksum transcodes text to UTF-8 and checksums it with the engine
// selected by useHardware, continuing from seed.
func Checksum(useHardware bool, seed uint32, text []byte, enc Encoding) (uint32, error) {
	utf8, err := ToUTF8(text, enc)
	if err != nil {
		return 0, err
	}
	return crc32c.Checksum(useHardware, seed, utf8), nil
}
