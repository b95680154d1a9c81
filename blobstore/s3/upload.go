package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/crc32c"
)

// UploadConfig configures the S3 uploader.
type UploadConfig struct {
	// PartSize is the minimum part size for multipart uploads.
	// Default: 8MB
	PartSize int64

	// Concurrency is the number of concurrent part uploads.
	// Default: 5
	Concurrency int

	// LeavePartsOnError keeps uploaded parts when a multipart upload fails.
	// Default: false (abort on error)
	LeavePartsOnError bool

	// Engine computes the checksum sent with single-part uploads.
	// Default: crc32c.EngineFor(crc32c.IsHardwareSupported())
	Engine crc32c.Engine
}

// DefaultUploadConfig returns the default upload settings.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:    8 * 1024 * 1024,
		Concurrency: 5,
		Engine:      crc32c.EngineFor(crc32c.IsHardwareSupported()),
	}
}

func newUploader(client Client, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = cfg.PartSize
		u.Concurrency = cfg.Concurrency
		u.LeavePartsOnError = cfg.LeavePartsOnError
	})
}

// Put uploads data in a single request. S3 rejects the upload unless the
// object it received matches the CRC32C sent with it.
func (s *Store) Put(ctx context.Context, name string, data []byte) (uint32, error) {
	crc := s.upload.Engine.Update(0, data)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:         aws.String(s.bucket),
		Key:            aws.String(s.key(name)),
		Body:           bytes.NewReader(data),
		ContentLength:  aws.Int64(int64(len(data))),
		ChecksumCRC32C: aws.String(crc32c.EncodeBase64(crc)),
	})
	if err != nil {
		return 0, err
	}
	return crc, nil
}

// Upload streams r to S3, switching to multipart above PartSize. Each part
// is validated with CRC32C by the service. The returned checksum covers the
// whole stream as read.
func (s *Store) Upload(ctx context.Context, name string, r io.Reader) (uint32, error) {
	cr := crc32c.NewReader(r, s.upload.Engine)

	_, err := newUploader(s.client, s.upload).Upload(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(s.bucket),
		Key:               aws.String(s.key(name)),
		Body:              cr,
		ChecksumAlgorithm: types.ChecksumAlgorithmCrc32c,
	})
	if err != nil {
		return 0, err
	}
	return cr.Sum(), nil
}
