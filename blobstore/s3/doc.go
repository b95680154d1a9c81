// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "backups/")
//
//	res, err := blobstore.Verify(ctx, store, "segment-0001", crc32c.New(), nil)
//
// # Features
//
//   - Range reads for streaming checksums of large objects
//   - Stored CRC32C reported from HeadObject when the object has a
//     full-object checksum
//   - CRC32C-validated uploads, single-part and multipart
//   - Automatic pagination for listing
package s3
