// Package testutil provides test helpers for the checksum packages.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Inputs
//
//	rng := testutil.NewRNG(seed)
//	buf := rng.Bytes(4096)
//	off := rng.Intn(8)
//
// # Reference Checksum
//
// Reference computes CRC-32C one bit at a time, straight from the
// polynomial. It is slow and independent of every table the engines use:
//
//	require.Equal(t, testutil.Reference(0, buf), crc32c.Value(buf))
package testutil
