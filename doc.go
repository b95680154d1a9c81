// Package crc32c computes CRC-32C (Castagnoli) checksums with a choice of
// engine: a portable slicing-by-8 table engine, or the CPU's CRC32
// instruction where present.
//
// # Quick Start
//
//	crc := crc32c.Calculate(crc32c.IsHardwareSupported(), data)
//
// Continue a checksum across buffers by passing the previous result back
// as the initial CRC:
//
//	crc := crc32c.Calculate(false, part1)
//	crc = crc32c.Calculate(false, part2, crc)
//
// # Engines
//
// Both engines produce bit-identical results. The routing functions
// (Checksum, Calculate, Dispatcher.Checksum) do not verify that the
// hardware engine is available; that decision belongs to the caller,
// usually informed by IsHardwareSupported.
//
// A Dispatcher resolves its engine once. With Kind Auto it honours the
// CRC32C_ENGINE environment variable ("software", "hardware" or "auto")
// and otherwise prefers hardware when supported:
//
//	d := crc32c.New(crc32c.WithLogger(crc32c.NewTextLogger(slog.LevelDebug)))
//	crc := d.Update(0, data)
//
// # Streaming
//
// NewHash returns a hash.Hash32; Writer and Reader checksum data as it
// flows through an io.Writer or io.Reader.
//
// # Stored Checksums
//
// Mask and Unmask implement the LevelDB convention for checksums stored
// alongside the data they cover. EncodeBase64 and DecodeBase64 convert to
// and from the S3 x-amz-checksum-crc32c form.
package crc32c
