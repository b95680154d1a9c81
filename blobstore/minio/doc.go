// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible servers such as Ceph and
// Garage without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "backups/")
//	res, err := blobstore.Sum(ctx, store, "segment-0001", crc32c.New())
//
// Objects uploaded with a full-object CRC32C report it through
// blobstore.ChecksumReporter, so blobstore.Verify can check them without an
// expected value.
package minio
