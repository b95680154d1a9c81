package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/crc32c/blobstore"
	"github.com/hupe1980/crc32c/blobstore/minio"
	"github.com/hupe1980/crc32c/blobstore/s3"
)

const stdinName = "-"

// input is one resolved checksum source. Stdin has no store.
type input struct {
	ref   string
	store blobstore.BlobStore
	name  string
}

func (in input) isStdin() bool { return in.store == nil }

// location is a parsed input or destination reference.
type location struct {
	scheme   string // "", "s3" or "minio"
	endpoint string // minio only
	bucket   string
	key      string
}

// parseLocation splits s3://bucket/key and minio://endpoint/bucket/key.
// Anything else is a local path.
func parseLocation(ref string) (location, error) {
	scheme, rest, ok := strings.Cut(ref, "://")
	if !ok {
		return location{key: ref}, nil
	}

	switch scheme {
	case "s3":
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return location{}, fmt.Errorf("%s: missing bucket", ref)
		}
		return location{scheme: scheme, bucket: bucket, key: key}, nil
	case "minio":
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return location{}, fmt.Errorf("%s: want minio://endpoint/bucket/key", ref)
		}
		loc := location{scheme: scheme, endpoint: parts[0], bucket: parts[1]}
		if len(parts) == 3 {
			loc.key = parts[2]
		}
		return loc, nil
	}
	return location{}, fmt.Errorf("%s: unsupported scheme %q", ref, scheme)
}

// sources builds object store clients on first use.
type sources struct {
	minioSecure bool

	s3Once   sync.Once
	s3Client *awss3.Client
	s3Err    error

	mu           sync.Mutex
	minioClients map[string]*miniogo.Client
}

func (s *sources) s3(ctx context.Context) (*awss3.Client, error) {
	s.s3Once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			s.s3Err = fmt.Errorf("load aws config: %w", err)
			return
		}
		s.s3Client = awss3.NewFromConfig(cfg)
	})
	return s.s3Client, s.s3Err
}

// minioClient reads credentials from MINIO_ACCESS_KEY/MINIO_SECRET_KEY or
// MINIO_ROOT_USER/MINIO_ROOT_PASSWORD.
func (s *sources) minioClient(endpoint string) (*miniogo.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.minioClients[endpoint]; ok {
		return c, nil
	}
	c, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  credentials.NewEnvMinio(),
		Secure: s.minioSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client for %s: %w", endpoint, err)
	}
	if s.minioClients == nil {
		s.minioClients = make(map[string]*miniogo.Client)
	}
	s.minioClients[endpoint] = c
	return c, nil
}

// objectStore returns the store for an s3 or minio location, rooted at the
// bucket.
func (s *sources) objectStore(ctx context.Context, loc location) (objectStore, error) {
	switch loc.scheme {
	case "s3":
		c, err := s.s3(ctx)
		if err != nil {
			return nil, err
		}
		return s3.NewStore(c, loc.bucket, ""), nil
	case "minio":
		c, err := s.minioClient(loc.endpoint)
		if err != nil {
			return nil, err
		}
		return minio.NewStore(c, loc.bucket, ""), nil
	}
	return nil, fmt.Errorf("no object store for scheme %q", loc.scheme)
}

// objectStore is a BlobStore that also accepts uploads.
type objectStore interface {
	blobstore.BlobStore
	Upload(ctx context.Context, name string, r io.Reader) (uint32, error)
}

var (
	_ objectStore = (*s3.Store)(nil)
	_ objectStore = (*minio.Store)(nil)
)

// resolve expands refs into inputs. Local directories and object prefixes
// ending in "/" expand to every blob beneath them.
func (s *sources) resolve(ctx context.Context, refs []string) ([]input, error) {
	var inputs []input
	for _, ref := range refs {
		if ref == stdinName {
			inputs = append(inputs, input{ref: ref})
			continue
		}

		loc, err := parseLocation(ref)
		if err != nil {
			return nil, err
		}

		if loc.scheme == "" {
			expanded, err := resolveLocal(ctx, ref)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, expanded...)
			continue
		}

		store, err := s.objectStore(ctx, loc)
		if err != nil {
			return nil, err
		}
		if loc.key != "" && !strings.HasSuffix(loc.key, "/") {
			inputs = append(inputs, input{ref: ref, store: store, name: loc.key})
			continue
		}

		names, err := store.List(ctx, loc.key)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", ref, err)
		}
		base := strings.TrimSuffix(strings.TrimSuffix(ref, loc.key), "/") + "/"
		for _, name := range names {
			inputs = append(inputs, input{ref: base + name, store: store, name: name})
		}
	}
	return inputs, nil
}

func resolveLocal(ctx context.Context, path string) ([]input, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !fi.IsDir() {
		store := blobstore.NewLocalStore(filepath.Dir(path))
		return []input{{ref: path, store: store, name: filepath.Base(path)}}, nil
	}

	store := blobstore.NewLocalStore(path)
	names, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}
	inputs := make([]input, 0, len(names))
	for _, name := range names {
		inputs = append(inputs, input{ref: filepath.Join(path, filepath.FromSlash(name)), store: store, name: name})
	}
	return inputs, nil
}
