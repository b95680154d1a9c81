package crc32c

import (
	"errors"
	"fmt"
)

// ErrChecksumMismatch is matched by every *ChecksumMismatchError.
var ErrChecksumMismatch = errors.New("crc32c: checksum mismatch")

// ChecksumMismatchError is returned when a computed checksum differs from
// the expected one.
type ChecksumMismatchError struct {
	Name     string
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
	}
	return fmt.Sprintf("checksum mismatch for %s: expected 0x%08x, got 0x%08x", e.Name, e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrChecksumMismatch) hold.
func (e *ChecksumMismatchError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// IsChecksumMismatch returns true if err is or wraps a checksum mismatch.
func IsChecksumMismatch(err error) bool {
	return errors.Is(err, ErrChecksumMismatch)
}

// VerifyChecksum returns a *ChecksumMismatchError when actual != expected.
func VerifyChecksum(name string, expected, actual uint32) error {
	if actual != expected {
		return &ChecksumMismatchError{
			Name:     name,
			Expected: expected,
			Actual:   actual,
		}
	}
	return nil
}
