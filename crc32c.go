package crc32c

import (
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/crc32c/internal/cpuid"
)

// Size of a CRC-32C checksum in bytes.
const Size = 4

// IsHardwareSupported reports whether the CPU provides the SSE4.2 CRC32
// instruction. The probe runs once per process.
func IsHardwareSupported() bool {
	return cpuid.Supported()
}

// Checksum extends seed with data using the hardware engine when
// useHardware is set and the software engine otherwise.
//
// Checksum routes only: it does not re-check hardware availability.
func Checksum(useHardware bool, seed uint32, data []byte) uint32 {
	if useHardware {
		return hardwareEngine{}.Update(seed, data)
	}
	return softwareEngine{}.Update(seed, data)
}

// Calculate returns the CRC-32C of data. An optional initial CRC continues
// a previous result; it defaults to 0.
func Calculate(useHardware bool, data []byte, initial ...uint32) uint32 {
	return Checksum(useHardware, seedOf(initial), data)
}

// CalculateString returns the CRC-32C of the UTF-8 encoding of s.
// Invalid UTF-8 sequences are replaced with U+FFFD first.
func CalculateString(useHardware bool, s string, initial ...uint32) uint32 {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return Checksum(useHardware, seedOf(initial), []byte(s))
}

// Value returns the CRC-32C of data using the best engine for this CPU.
func Value(data []byte) uint32 {
	return Checksum(IsHardwareSupported(), 0, data)
}

// Extend returns the CRC-32C of concat(A, data) where crc is the CRC-32C of A.
func Extend(crc uint32, data []byte) uint32 {
	return Checksum(IsHardwareSupported(), crc, data)
}

func seedOf(initial []uint32) uint32 {
	if len(initial) == 0 {
		return 0
	}
	return initial[0]
}
