package tategaki

import (
	"fmt"

	"github.com/tategaki/tategaki/blobstore"
	"github.com/tategaki/tategaki/persistence"
)

// Repository opens dictionaries from a directory by name, for
// processes that manage several of them at once (a system dictionary
// plus one or more user dictionaries) rather than a single fixed path.
type Repository struct {
	store *blobstore.LocalStore
}

// OpenRepository returns a Repository rooted at dir. It does not
// itself touch the filesystem; opening fails lazily, per dictionary,
// in List or Load.
func OpenRepository(dir string) *Repository {
	return &Repository{store: blobstore.NewLocalStore(dir)}
}

// List returns the names of every ".dict" file directly under the
// repository's root.
func (r *Repository) List() ([]string, error) {
	return r.store.List(".dict")
}

// Load opens and decodes the dictionary named name. It always runs
// structural validation (the blob-based path has no metadata-hash
// cache marker to trust, unlike Load); use tategaki.Load directly
// against a path if WithTrustCache matters.
func (r *Repository) Load(name string) (*Dictionary, error) {
	b, err := r.store.Open(name)
	if err != nil {
		return nil, fmt.Errorf("tategaki: open %s: %w", name, err)
	}
	return LoadFromBlob(b)
}

// blobOwner adapts a blobstore.Blob into a persistence.Owner so a
// Dictionary built from one releases it the same way as one built
// from a plain mmap.Archive.
type blobOwner struct {
	b    blobstore.Blob
	data []byte
}

func (o *blobOwner) Bytes() []byte { return o.data }
func (o *blobOwner) Close() error  { return o.b.Close() }

// LoadFromBlob decodes a dictionary directly from an already-open
// blobstore.Blob, which must also implement blobstore.Mappable (every
// built-in BlobStore implementation, including LocalStore, does).
func LoadFromBlob(b blobstore.Blob) (*Dictionary, error) {
	m, ok := b.(blobstore.Mappable)
	if !ok {
		return nil, fmt.Errorf("tategaki: blob does not support zero-copy access")
	}
	full, err := m.Bytes()
	if err != nil {
		return nil, err
	}

	if len(full) < persistence.MagicLen {
		return nil, persistence.ErrTooSmall
	}
	head := full[:persistence.MagicLen]
	if len(persistence.LegacyMagicPrefix) <= len(head) && string(head[:len(persistence.LegacyMagicPrefix)]) == persistence.LegacyMagicPrefix {
		return nil, persistence.ErrLegacyFormat
	}
	if string(head) != persistence.MagicBytes {
		return nil, persistence.ErrInvalidMagic
	}
	if len(full) < persistence.DataStart {
		return nil, persistence.ErrTooSmall
	}

	data := full[persistence.DataStart:]
	decoded, err := decodeRoot(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	owner := &blobOwner{b: b, data: data}
	return &Dictionary{result: &persistence.LoadResult{Owner: owner, Data: data}, dict: *decoded}, nil
}
