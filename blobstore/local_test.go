package blobstore

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_OpenReadAt(t *testing.T) {
	tmpDir := t.TempDir()
	data := []byte("hello world, this is a test dictionary blob")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ipadic.dict"), data, 0644))

	store := NewLocalStore(tmpDir)

	blob, err := store.Open("ipadic.dict")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(buf, 6) // "world"
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	mappable, ok := blob.(Mappable)
	require.True(t, ok)
	full, err := mappable.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, full)
}

func TestLocalStore_List(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "sys.dict"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "user.dict"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte("c"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "subdir.dict"), 0755))

	store := NewLocalStore(tmpDir)

	names, err := store.List(".dict")
	require.NoError(t, err)
	sort.Strings(names)
	require.Equal(t, []string{"sys.dict", "user.dict"}, names)

	all, err := store.List("")
	require.NoError(t, err)
	sort.Strings(all)
	require.Equal(t, []string{"README.md", "sys.dict", "user.dict"}, all)
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Open("missing.dict")
	require.Error(t, err)
}
