package persistence

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/tategaki/tategaki/internal/mmap"
)

func uintptrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// LoadMode selects whether Load trusts an existing cache marker or
// always re-runs structural validation.
type LoadMode int

const (
	// Validate always runs full structural validation.
	Validate LoadMode = iota
	// TrustCache skips validation if a cache marker for this file's
	// MetadataHash already exists, and creates one on success
	// otherwise.
	TrustCache
)

// Owner is the lifetime-owning container behind a loaded dictionary:
// either an mmap.Archive or an aligned, heap-owned byte buffer used as
// the fallback when the mapped offset isn't 16-byte aligned.
type Owner interface {
	Bytes() []byte
	Close() error
}

// ownedBuffer implements Owner over a plain []byte (the 16-byte
// aligned-copy fallback path; Go's allocator already aligns slice
// backing arrays suitably for our int32-widest access pattern, so
// Close is a no-op).
type ownedBuffer struct{ b []byte }

func (o *ownedBuffer) Bytes() []byte { return o.b }
func (o *ownedBuffer) Close() error  { return nil }

// LoadObserver receives events from Load's cache-check, validate, and
// alignment-fallback branches. Every field is optional; a nil field is
// simply skipped, so a caller that only cares about one event doesn't
// have to populate the others.
type LoadObserver struct {
	// CacheHit is called once, only in TrustCache mode, reporting
	// whether a local or global cache marker for hash already existed and so
	// short-circuited structural validation.
	CacheHit func(hash string, hit bool)
	// Validated is called once structural validation has run, with err
	// nil on success (including a successful post-fallback re-run).
	Validated func(path string, err error)
	// AlignmentFallback is called when the mapped root's offset didn't
	// satisfy RootAlignment and Load had to copy it into a freshly
	// aligned buffer before validation could proceed.
	AlignmentFallback func(path string)
}

func (o *LoadObserver) cacheHit(hash string, hit bool) {
	if o != nil && o.CacheHit != nil {
		o.CacheHit(hash, hit)
	}
}

func (o *LoadObserver) validated(path string, err error) {
	if o != nil && o.Validated != nil {
		o.Validated(path, err)
	}
}

func (o *LoadObserver) alignmentFallback(path string) {
	if o != nil && o.AlignmentFallback != nil {
		o.AlignmentFallback(path)
	}
}

// Validator inspects the archived root bytes (the slice starting at
// DataStart) and returns a non-nil error if anything about the
// lexicon, connector, char table, or id mapper sections is
// structurally invalid. Supplied by the caller (the root tategaki
// package), which is the only place that knows how to decode those
// sections — persistence only owns the outer container and the
// RootHeader's section-size bookkeeping.
type Validator func(data []byte) error

// LoadResult is the outcome of Load: an owning container plus the
// slice of it holding the archived root (data[DataStart:] of the
// file, i.e. owner.Bytes() re-sliced by Load's caller is unnecessary —
// Data already starts at the root).
type LoadResult struct {
	Owner Owner
	Data  []byte
	Hash  string
}

// Close releases the owning container.
func (r *LoadResult) Close() error {
	if r == nil || r.Owner == nil {
		return nil
	}
	return r.Owner.Close()
}

// Load opens path, checks its magic bytes, mmaps it, computes its
// metadata hash, short-circuits structural validation if a matching
// cache marker exists, and otherwise validates the structure (falling
// back to a heap-aligned copy if the mapped offset isn't aligned).
func Load(path string, mode LoadMode, globalCacheDir string, validate Validator, obs *LoadObserver) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("persistence: open %s: %w", path, err)
	}
	head := make([]byte, MagicLen)
	n, err := f.Read(head)
	_ = f.Close()
	if err != nil && n < MagicLen {
		return nil, fmt.Errorf("persistence: read magic of %s: %w", path, err)
	}
	if n < MagicLen {
		return nil, ErrTooSmall
	}
	if len(LegacyMagicPrefix) <= len(head) && string(head[:len(LegacyMagicPrefix)]) == LegacyMagicPrefix {
		return nil, ErrLegacyFormat
	}
	if string(head) != MagicBytes {
		return nil, ErrInvalidMagic
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("persistence: mmap %s: %w", path, err)
	}
	_ = m.Advise(mmap.AccessRandom)

	fullData := m.Bytes()
	if len(fullData) < DataStart {
		_ = m.Close()
		return nil, ErrTooSmall
	}

	fi, statErr := os.Stat(path)
	var hash string
	if statErr == nil {
		hash = MetadataHash(fi)
	}

	trustCache := mode == TrustCache && hash != "" && CacheMarkerExists(path, globalCacheDir, hash)
	if mode == TrustCache && hash != "" {
		obs.cacheHit(hash, trustCache)
	}

	data := fullData[DataStart:]

	if !trustCache {
		verr := runValidation(data, validate)
		obs.validated(path, verr)
		if verr != nil {
			if isAlignmentError(verr) {
				obs.alignmentFallback(path)
				aligned, aerr := copyAligned(data)
				if aerr != nil {
					_ = m.Close()
					return nil, aerr
				}
				verr2 := runValidation(aligned, validate)
				obs.validated(path, verr2)
				if verr2 != nil {
					_ = m.Close()
					return nil, fmt.Errorf("%w: %v", ErrValidationFailed, verr2)
				}
				_ = m.Close()
				return &LoadResult{Owner: &ownedBuffer{b: aligned}, Data: aligned, Hash: hash}, nil
			}
			_ = m.Close()
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, verr)
		}
		if mode == TrustCache && hash != "" {
			_ = CreateGlobalCacheMarker(globalCacheDir, hash)
		}
	}

	return &LoadResult{Owner: m, Data: data, Hash: hash}, nil
}

// LoadUnchecked skips both the magic check and structural validation;
// the caller asserts the file's integrity.
func LoadUnchecked(path string) (*LoadResult, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	fullData := m.Bytes()
	if len(fullData) < DataStart {
		_ = m.Close()
		return nil, ErrTooSmall
	}
	return &LoadResult{Owner: m, Data: fullData[DataStart:]}, nil
}

func runValidation(data []byte, validate Validator) error {
	if err := checkAlignment(data); err != nil {
		return err
	}
	if _, _, err := ValidateRootHeader(data); err != nil {
		return err
	}
	if validate == nil {
		return nil
	}
	return validate(data)
}

func checkAlignment(data []byte) error {
	return validateAlignment(data, RootAlignment)
}

func isAlignmentError(err error) bool {
	return errors.Is(err, ErrUnalignedAccess)
}

// copyAligned copies data into a freshly allocated, guaranteed
// 16-byte aligned buffer, for the pathological case where the mapped
// offset (tar overlays and similar) breaks page alignment.
func copyAligned(data []byte) ([]byte, error) {
	// Over-allocate and hand back a sub-slice whose start address is a
	// multiple of RootAlignment; Go slices don't expose alloc address
	// control directly, so we round-trip through a larger backing
	// array.
	buf := make([]byte, len(data)+RootAlignment)
	start := (RootAlignment - int(uintptrOf(buf))%RootAlignment) % RootAlignment
	aligned := buf[start : start+len(data)]
	copy(aligned, data)
	if uintptrOf(aligned)%RootAlignment != 0 {
		return nil, fmt.Errorf("persistence: failed to produce an aligned buffer")
	}
	return aligned, nil
}
