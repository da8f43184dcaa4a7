package tategaki

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tategaki/tategaki/charclass"
	"github.com/tategaki/tategaki/connector"
	"github.com/tategaki/tategaki/core"
	"github.com/tategaki/tategaki/lattice"
	"github.com/tategaki/tategaki/lexicon"
	"github.com/tategaki/tategaki/persistence"
)

// Dictionary is an opened, validated tategaki dictionary: a system
// lexicon, an optional user lexicon, an unknown-word handler and a
// connector, all zero-copy views over a single owned byte container
// (an mmap.Archive, or a heap-allocated aligned buffer on the
// alignment-fallback path of persistence.Load).
//
// A Dictionary is safe for concurrent use by any number of Tokenizers
// and Workers; it holds no per-call mutable state.
type Dictionary struct {
	result *persistence.LoadResult
	dict   lattice.Dictionary
}

// decodeRoot decodes every section of an archived root (the bytes
// starting at persistence.DataStart) into the views lattice.Dictionary
// needs. It is used both as the persistence.Validator passed to
// persistence.Load — where only its error matters — and again on the
// validated result to build the real Dictionary.
func decodeRoot(data []byte) (*lattice.Dictionary, error) {
	h, off, err := persistence.ValidateRootHeader(data)
	if err != nil {
		return nil, err
	}
	sys, user, unk, conn, chars, idmapData := persistence.Sections(data, h)
	_ = idmapData // the id mapper only matters to the dictionary compiler, not the tokenizer

	sysLex, err := lexicon.Decode(sys, core.System)
	if err != nil {
		return nil, newValidationError(off, "system lexicon", err)
	}
	sectionOff := off + len(sys)

	var userLex lexicon.View
	if h.HasUserLexicon() {
		userLex, err = lexicon.Decode(user, core.User)
		if err != nil {
			return nil, newValidationError(sectionOff, "user lexicon", err)
		}
	}
	sectionOff += len(user)

	unkLex, err := lexicon.Decode(unk, core.Unknown)
	if err != nil {
		return nil, newValidationError(sectionOff, "unknown lexicon", err)
	}
	sectionOff += len(unk)

	conView, err := connector.Decode(h.GetConnectorKind(), conn)
	if err != nil {
		return nil, newValidationError(sectionOff, "connector", err)
	}
	sectionOff += len(conn)

	table, err := charclass.Decode(chars)
	if err != nil {
		return nil, newValidationError(sectionOff, "char class table", err)
	}

	return &lattice.Dictionary{
		System:         sysLex,
		User:           userLex,
		Unknown:        charclass.NewUnknownHandler(table),
		UnknownLexicon: unkLex,
		Connector:      conView,
	}, nil
}

// Load opens path, mmaps it, validates (or trusts a cache marker for)
// its structure, and decodes every section into a ready-to-use
// Dictionary, ready for tokenization.
//
// It follows the magic check, cache-marker short-circuit, structural
// validation, and alignment-fallback sequence persistence.Load
// implements.
func Load(path string, optFns ...Option) (*Dictionary, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty dictionary path", ErrInvalidArgument)
	}
	o := applyOptions(optFns)

	var decoded *lattice.Dictionary
	validator := func(data []byte) error {
		d, err := decodeRoot(data)
		if err != nil {
			return err
		}
		decoded = d
		return nil
	}

	obs := &persistence.LoadObserver{
		CacheHit: func(hash string, hit bool) {
			o.logger.LogCacheHit(context.Background(), hash, hit)
		},
		Validated: func(p string, verr error) {
			o.logger.LogValidate(context.Background(), p, verr)
		},
		AlignmentFallback: func(p string) {
			o.logger.LogAlignmentFallback(context.Background(), p)
		},
	}

	res, err := persistence.Load(path, o.loadMode, o.globalCacheDir, validator, obs)
	o.logger.LogLoad(context.Background(), path, o.loadMode == persistence.TrustCache, err)
	if err != nil {
		return nil, err
	}

	if decoded == nil {
		// The cache marker short-circuited validation; decode for real now.
		decoded, err = decodeRoot(res.Data)
		if err != nil {
			_ = res.Close()
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
	}

	return &Dictionary{result: res, dict: *decoded}, nil
}

// LoadUnchecked opens path and decodes it without running magic or
// structural validation; the caller asserts the file's integrity.
func LoadUnchecked(path string) (*Dictionary, error) {
	res, err := persistence.LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	decoded, err := decodeRoot(res.Data)
	if err != nil {
		_ = res.Close()
		return nil, err
	}
	return &Dictionary{result: res, dict: *decoded}, nil
}

// LoadZstd decompresses a zstd-compressed dictionary at src into
// <cacheDir>/<hash>.dic, where hash is the metadata hash of the
// compressed file src itself, and then Loads the decompressed file.
// Deriving the destination name from src's own metadata hash means
// repeat callers never need to invent or track a cache filename: point
// two calls at the same src and cacheDir and the second reuses the
// first's decompressed file instead of re-inflating it.
func LoadZstd(ctx context.Context, src string, cacheDir string, optFns ...Option) (*Dictionary, error) {
	o := applyOptions(optFns)

	hash, err := persistence.MetadataHashOfFile(src)
	if err != nil {
		return nil, fmt.Errorf("tategaki: stat %s: %w", src, err)
	}
	cachePath := filepath.Join(cacheDir, hash+".dic")

	if _, err := os.Stat(cachePath); err != nil {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("tategaki: open %s: %w", src, err)
		}
		defer f.Close()

		if err := persistence.DecompressToCache(ctx, f, cachePath, o.resources); err != nil {
			o.logger.LogZstdDecompress(ctx, src, cachePath, 0, err)
			return nil, err
		}
		o.logger.LogZstdDecompress(ctx, src, cachePath, 0, nil)
	}

	return Load(cachePath, optFns...)
}

// Close releases the dictionary's owning container (the mmap, or the
// aligned fallback buffer).
func (d *Dictionary) Close() error {
	if d == nil || d.result == nil {
		return nil
	}
	return d.result.Close()
}

// WithUserLexicon returns a Dictionary identical to d except its user
// lexicon is replaced by one compiled from r's MeCab-style CSV
// (lexicon.LoadCSV), or removed entirely if r is nil. The returned
// Dictionary shares d's underlying archive mapping (Close on either
// releases it; Close is safe to call on both), so swapping the user
// lexicon of an already-loaded system dictionary never re-touches
// disk.
//
// This is the runtime analog of resetting a tokenizer's user lexicon
// from a reader instead of only from a prebuilt archive: useful for a
// long-running process that wants to pick up an edited user dictionary
// without rebuilding or reopening the system one.
func (d *Dictionary) WithUserLexicon(r io.Reader) (*Dictionary, error) {
	next := d.dict
	if r == nil {
		next.User = nil
	} else {
		userLex, err := lexicon.LoadCSV(r, d.dict.Connector)
		if err != nil {
			return nil, err
		}
		next.User = userLex
	}
	return &Dictionary{result: d.result, dict: next}, nil
}

// Hash returns the dictionary file's metadata hash, as computed by
// persistence.MetadataHash, empty if unavailable (e.g. LoadUnchecked).
func (d *Dictionary) Hash() string {
	if d == nil || d.result == nil {
		return ""
	}
	return d.result.Hash
}
