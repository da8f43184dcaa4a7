package persistence

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tategaki/tategaki/internal/fs"
)

func zstdCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecompressToCache_RoundTrip(t *testing.T) {
	want := bytes.Repeat([]byte("tategaki-dict"), 1000)
	compressed := zstdCompress(t, want)

	dir := t.TempDir()
	dst := filepath.Join(dir, "sub", "cache.dict")

	err := decompressToCache(context.Background(), bytes.NewReader(compressed), dst, nil, fs.Default)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecompressToCache_FailsOnCopyError(t *testing.T) {
	want := bytes.Repeat([]byte("x"), 4096)
	compressed := zstdCompress(t, want)

	dir := t.TempDir()
	dst := filepath.Join(dir, "cache.dict")

	ffs := fs.NewFaultyFS(fs.Default)
	ffs.Default = fs.Fault{FailAfterBytes: 16}

	err := decompressToCache(context.Background(), bytes.NewReader(compressed), dst, nil, ffs)
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "destination must not appear on a failed decompress")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "the temp file must be cleaned up after a failed write")
}

func TestDecompressToCache_FailsOnSyncError(t *testing.T) {
	want := []byte("small payload")
	compressed := zstdCompress(t, want)

	dir := t.TempDir()
	dst := filepath.Join(dir, "cache.dict")

	ffs := fs.NewFaultyFS(fs.Default)
	ffs.Default = fs.Fault{FailAfterBytes: -1, FailOnSync: true}

	err := decompressToCache(context.Background(), bytes.NewReader(compressed), dst, nil, ffs)
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDecompressToCache_FailsOnRename(t *testing.T) {
	want := []byte("small payload")
	compressed := zstdCompress(t, want)

	dir := t.TempDir()
	dst := filepath.Join(dir, "cache.dict")

	ffs := fs.NewFaultyFS(fs.Default)
	ffs.AddRule(dir, fs.Fault{FailAfterBytes: -1})

	brokenRename := &renameFailFS{FileSystem: ffs}
	err := decompressToCache(context.Background(), bytes.NewReader(compressed), dst, nil, brokenRename)
	require.Error(t, err)
}

// renameFailFS wraps a fs.FileSystem and always fails Rename, for
// exercising decompressToCache's final atomic-publish step without a
// FaultyFS rule for it (FaultyFS has no native rename fault).
type renameFailFS struct {
	fs.FileSystem
}

func (r *renameFailFS) Rename(oldpath, newpath string) error {
	return os.ErrPermission
}
