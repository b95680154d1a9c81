package textenc

import (
	"bytes"
	"io"
	"testing"

	"github.com/hupe1980/crc32c"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum_SameTextAcrossEncodings(t *testing.T) {
	const text = "Grüße"
	want := crc32c.Value([]byte(text))

	inputs := map[Encoding][]byte{
		UTF8:    []byte(text),
		UTF16LE: {'G', 0, 'r', 0, 0xfc, 0, 0xdf, 0, 'e', 0},
		UTF16BE: {0, 'G', 0, 'r', 0, 0xfc, 0, 0xdf, 0, 'e'},
		Latin1:  {'G', 'r', 0xfc, 0xdf, 'e'},
	}

	for enc, in := range inputs {
		for _, hw := range []bool{false, true} {
			got, err := Checksum(hw, 0, in, enc)
			require.NoError(t, err, enc.String())
			assert.Equal(t, want, got, enc.String())
		}
	}
}

func TestToUTF8_BOMOverridesByteOrder(t *testing.T) {
	bigEndianWithBOM := []byte{0xfe, 0xff, 0, 'h', 0, 'i'}

	out, err := ToUTF8(bigEndianWithBOM, UTF16LE)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(out))

	littleEndianWithBOM := []byte{0xff, 0xfe, 'h', 0, 'i', 0}
	out, err = ToUTF8(littleEndianWithBOM, UTF16BE)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(out))
}

func TestToUTF8_InvalidUTF8Replaced(t *testing.T) {
	out, err := ToUTF8([]byte{'a', 0xff, 'b'}, UTF8)
	require.NoError(t, err)
	assert.Equal(t, "a\uFFFDb", string(out))
}

func TestToUTF8_LegacyCodePages(t *testing.T) {
	out, err := ToUTF8([]byte{0x81}, CP437)
	require.NoError(t, err)
	assert.Equal(t, "ü", string(out))

	out, err = ToUTF8([]byte{0x82, 0xa0}, ShiftJIS)
	require.NoError(t, err)
	assert.Equal(t, "あ", string(out))
}

func TestChecksum_Seed(t *testing.T) {
	first, err := Checksum(false, 0, []byte("1234"), UTF8)
	require.NoError(t, err)

	got, err := Checksum(false, first, []byte{'5', 0, '6', 0, '7', 0, '8', 0, '9', 0}, UTF16LE)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xE3069283), got)
}

func TestNewReader(t *testing.T) {
	r, err := NewReader(bytes.NewReader([]byte{0, 'o', 0, 'k'}), UTF16BE)
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
}

func TestParseEncoding(t *testing.T) {
	tests := map[string]Encoding{
		"":           UTF8,
		"UTF-8":      UTF8,
		"utf16le":    UTF16LE,
		"UTF_16BE":   UTF16BE,
		"ISO-8859-1": Latin1,
		"latin1":     Latin1,
		"IBM437":     CP437,
		"Shift_JIS":  ShiftJIS,
	}
	for in, want := range tests {
		got, err := ParseEncoding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, e := range []Encoding{UTF8, UTF16LE, UTF16BE, Latin1, CP437, ShiftJIS} {
		got, err := ParseEncoding(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err := ParseEncoding("ebcdic")
	assert.ErrorIs(t, err, ErrUnknownEncoding)

	_, err = ToUTF8(nil, Encoding(99))
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}
