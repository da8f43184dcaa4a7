package persistence

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/tategaki/tategaki/internal/fs"
	"github.com/tategaki/tategaki/resource"
)

// DecompressToCache reads a zstd-compressed dictionary from src,
// decompresses it, and persists the result atomically into dstPath
// (temp file + fsync + rename, the same durability pattern as
// SaveToFile) so the caller can mmap the decompressed file on this
// and every subsequent run instead of inflating in memory each time.
//
// When rc is non-nil, the read side of the decompression is rate
// limited through it, so warming a large dictionary cache doesn't
// starve the rest of a process's I/O budget.
func DecompressToCache(ctx context.Context, src io.Reader, dstPath string, rc *resource.Controller) error {
	return decompressToCache(ctx, src, dstPath, rc, fs.Default)
}

// decompressToCache is DecompressToCache's implementation, parameterized
// over a fs.FileSystem so tests can inject fs.FaultyFS to exercise the
// atomic-write error paths (temp create, copy, sync, rename) without
// depending on real disk-full or permission conditions.
func decompressToCache(ctx context.Context, src io.Reader, dstPath string, rc *resource.Controller, fsys fs.FileSystem) (err error) {
	if rc != nil {
		src = resource.NewRateLimitedReader(src, rc, ctx)
	}

	zr, err := zstd.NewReader(src)
	if err != nil {
		return fmt.Errorf("persistence: open zstd stream: %w", err)
	}
	defer zr.Close()

	dir := filepath.Dir(dstPath)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("persistence: create cache dir %s: %w", dir, err)
	}
	tmpPath := filepath.Join(dir, fmt.Sprintf(".tategaki-zstd-%d.tmp", rand.Uint64()))
	tmp, err := fsys.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("persistence: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpPath)
		}
	}()

	if _, err = io.Copy(tmp, zr); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("persistence: decompress into %s: %w", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("persistence: fsync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("persistence: close %s: %w", tmpPath, err)
	}
	if err = fsys.Rename(tmpPath, dstPath); err != nil {
		return fmt.Errorf("persistence: rename %s to %s: %w", tmpPath, dstPath, err)
	}
	return nil
}

// IsZstdFile reports whether the file at path begins with the zstd
// magic number, distinguishing a compressed archive from a raw
// tategaki dictionary before choosing a load strategy.
func IsZstdFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	var magic [4]byte
	n, err := f.Read(magic[:])
	if err != nil && n < 4 {
		return false, nil
	}
	return magic[0] == 0x28 && magic[1] == 0xB5 && magic[2] == 0x2F && magic[3] == 0xFD, nil
}
