package minio

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/tategaki/tategaki/blobstore"
)

// Store implements blobstore.BlobStore against a MinIO (or other
// S3-compatible) bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore returns a Store rooted at rootPrefix within bucket.
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: rootPrefix}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open fetches the named object in full and returns a Blob backed by
// the downloaded bytes.
func (s *Store) Open(name string) (blobstore.Blob, error) {
	ctx := context.Background()
	key := s.key(name)

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateErr(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateErr(err)
	}
	return &blob{data: data}, nil
}

// List returns every object name under the store's prefix, name
// meaning the key with the store's rootPrefix stripped.
func (s *Store) List(prefix string) ([]string, error) {
	ctx := context.Background()
	fullPrefix := s.key(prefix)

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    fullPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		name = strings.TrimPrefix(name, "/")
		if name != "" {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

func translateErr(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NotFound" {
		return blobstore.ErrNotFound
	}
	return err
}

// blob is a fully downloaded object, satisfying blobstore.Blob and
// blobstore.Mappable over the buffer already in memory.
type blob struct {
	data []byte
}

func (b *blob) Size() int64 { return int64(len(b.data)) }

func (b *blob) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("minio: negative offset")
	}
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *blob) Bytes() ([]byte, error) { return b.data, nil }

func (b *blob) Close() error { return nil }

var _ blobstore.Mappable = (*blob)(nil)
