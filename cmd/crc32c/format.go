package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/crc32c"
)

func formatCRC(crc uint32, format string) string {
	switch format {
	case "dec":
		return strconv.FormatUint(uint64(crc), 10)
	case "base64":
		return crc32c.EncodeBase64(crc)
	default:
		return fmt.Sprintf("%08x", crc)
	}
}

// parseCRC accepts 0x-prefixed or eight-digit hex, base64 as printed by
// --format=base64, and decimal.
func parseCRC(s string) (uint32, error) {
	s = strings.TrimSpace(s)

	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex checksum %q", s)
		}
		return uint32(v), nil
	}

	if len(s) == 8 && isHex(s) {
		v, err := strconv.ParseUint(s, 16, 32)
		if err == nil {
			return uint32(v), nil
		}
	}

	if v, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(v), nil
	}

	if v, err := crc32c.DecodeBase64(s); err == nil {
		return v, nil
	}
	return 0, fmt.Errorf("unrecognised checksum %q", s)
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
