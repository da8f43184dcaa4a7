package s3

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tategaki/tategaki/blobstore"
)

// Store implements blobstore.BlobStore against an S3 bucket.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewStore returns a Store rooted at rootPrefix within bucket. client
// is normally built from an aws.Config loaded via
// config.LoadDefaultConfig, exactly as any other S3 caller would.
func NewStore(client *s3.Client, bucket, rootPrefix string) *Store {
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

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nf *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}
	return &blob{data: data}, nil
}

// List returns every object name under the store's prefix, name
// meaning the key with the store's rootPrefix stripped.
func (s *Store) List(prefix string) ([]string, error) {
	ctx := context.Background()
	fullPrefix := s.key(prefix)

	var names []string
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(fullPrefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			name = strings.TrimPrefix(name, "/")
			if name != "" {
				names = append(names, name)
			}
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}

	sort.Strings(names)
	return names, nil
}

// blob is a fully downloaded S3 object, satisfying blobstore.Blob and
// blobstore.Mappable over the buffer already in memory.
type blob struct {
	data []byte
}

func (b *blob) Size() int64 { return int64(len(b.data)) }

func (b *blob) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("s3: negative offset")
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
