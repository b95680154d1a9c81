// Package blobstore reads checksum inputs from local files, memory and
// object stores, and streams them through a crc32c.Engine.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped so whole files are
//     checksummed in place
//   - MemoryStore: in-memory blobs for tests
//   - s3.Store: Amazon S3 with ranged reads and stored CRC32C lookup
//   - minio.Store: MinIO and other S3-compatible endpoints
//
// # Checksumming
//
//	res, err := blobstore.Sum(ctx, store, "segment-0001.bin", crc32c.New())
//	fmt.Printf("%08x %d\n", res.CRC, res.Size)
//
// Blobs whose store keeps a CRC32C (S3 with checksum mode, MinIO) report it
// through ChecksumReporter, and Verify compares against it when no expected
// value is given.
package blobstore
