package mmap

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_OpenReadClose(t *testing.T) {
	content := []byte("archived dictionary bytes")
	f, err := os.CreateTemp("", "tategaki_archive")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	_, err = f.Write(content)
	require.NoError(t, err)
	f.Close()

	m, err := Open(f.Name())
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, int64(len(content)), int64(m.Size()))
	assert.Equal(t, content, m.Bytes())

	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 9) // "dicti"
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "dicti", string(buf))

	buf2 := make([]byte, 10)
	n, err = m.ReadAt(buf2, 1000)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	buf3 := make([]byte, 40)
	n, err = m.ReadAt(buf3, 9)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "dictionary bytes", string(buf3[:n]))

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)
}

func TestArchive_EmptyFile(t *testing.T) {
	f, err := os.CreateTemp("", "tategaki_archive_empty")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	f.Close()

	m, err := Open(f.Name())
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
}

func TestArchive_Advise(t *testing.T) {
	f, err := os.CreateTemp("", "tategaki_archive_advise")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	size := 1024
	_, err = f.Write(make([]byte, size))
	require.NoError(t, err)
	f.Close()

	m, err := Open(f.Name())
	require.NoError(t, err)

	// Trie/connector lookups jump around a dictionary archive rather
	// than streaming it, so a caller advises the kernel accordingly
	// right after mapping it.
	require.NoError(t, m.Advise(AccessRandom))
	require.NoError(t, m.Advise(AccessSequential))

	require.NoError(t, m.Close())

	assert.Error(t, m.Advise(AccessRandom))
}

func TestArchive_MethodsAfterClose(t *testing.T) {
	f, err := os.CreateTemp("", "tategaki_archive_closed")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	_, err = f.Write([]byte("data"))
	require.NoError(t, err)
	f.Close()

	m, err := Open(f.Name())
	require.NoError(t, err)
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.Error(t, m.Advise(AccessRandom))
}
