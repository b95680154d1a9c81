package crc32c

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// maskDelta is added after rotation when masking, as LevelDB does.
const maskDelta = 0xa282ead8

// Mask returns a masked representation of crc.
//
// Computing the CRC of data that embeds CRCs is problematic, so stored
// checksums are usually masked first.
func Mask(crc uint32) uint32 {
	return (crc>>15 | crc<<17) + maskDelta
}

// Unmask returns the crc whose masked representation is masked.
func Unmask(masked uint32) uint32 {
	rot := masked - maskDelta
	return rot>>17 | rot<<15
}

// EncodeBase64 returns the base64 of the big-endian checksum bytes, the
// representation S3 uses for x-amz-checksum-crc32c.
func EncodeBase64(crc uint32) string {
	var b [Size]byte
	binary.BigEndian.PutUint32(b[:], crc)
	return base64.StdEncoding.EncodeToString(b[:])
}

// DecodeBase64 parses a value produced by EncodeBase64.
func DecodeBase64(s string) (uint32, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("crc32c: decode base64 checksum: %w", err)
	}
	if len(b) != Size {
		return 0, fmt.Errorf("crc32c: base64 checksum has %d bytes, want %d", len(b), Size)
	}
	return binary.BigEndian.Uint32(b), nil
}
