package blobstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tategaki/tategaki/internal/mmap"
)

// LocalStore implements BlobStore using the local file system.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open opens a blob for reading.
func (s *LocalStore) Open(name string) (Blob, error) {
	path := filepath.Join(s.root, name)
	// mmap by default: dictionaries are read far more often than they're
	// opened, and tokenization wants zero-copy random access into them.
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	// Trie traversal and connector lookups jump around the archive
	// rather than streaming it, so the sequential-readahead default
	// would only cost cache pressure.
	_ = m.Advise(mmap.AccessRandom)
	return &localBlob{m: m}, nil
}

// List returns the names of every regular file directly under the
// store's root whose name has the given suffix (e.g. ".dict"), for
// discovering the dictionaries available in a directory without
// hardcoding their names.
func (s *LocalStore) List(suffix string) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if suffix != "" && !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

type localBlob struct {
	m *mmap.Archive
}

func (b *localBlob) ReadAt(p []byte, off int64) (n int, err error) {
	return b.m.ReadAt(p, off)
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(len(b.m.Bytes()))
}

func (b *localBlob) Bytes() ([]byte, error) {
	return b.m.Bytes(), nil
}
