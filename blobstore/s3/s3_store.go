package s3

import (
	"context"
	"path"
	"strings"

	"github.com/hupe1980/crc32c/blobstore"
)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client Client
	bucket string
	prefix string
	upload UploadConfig
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "backups/").
func NewStore(client Client, bucket, rootPrefix string, optFns ...func(*UploadConfig)) *Store {
	cfg := DefaultUploadConfig()
	for _, fn := range optFns {
		fn(&cfg)
	}
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
		upload: cfg,
	}
}

// Bucket returns the bucket name.
func (s *Store) Bucket() string {
	return s.bucket
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Open heads the object and returns a blob that reads it in ranges.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	return openBlob(ctx, s.client, s.bucket, s.key(name))
}

// listPrefix joins the root and prefix like key but keeps a trailing
// slash, so "dir/" does not match "dir2/".
func (s *Store) listPrefix(prefix string) string {
	root := strings.TrimSuffix(s.prefix, "/")
	switch {
	case root == "":
		return prefix
	case prefix == "":
		return root + "/"
	default:
		return root + "/" + strings.TrimPrefix(prefix, "/")
	}
}

// List returns object names under prefix, relative to the store's root.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	full := s.listPrefix(prefix)
	return listObjects(ctx, s.client, s.bucket, full, s.prefix)
}
