package s3

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlob_ReadAt(t *testing.T) {
	b := &blob{data: []byte("archived dictionary bytes")}

	assert.Equal(t, int64(len(b.data)), b.Size())

	buf := make([]byte, 8)
	n, err := b.ReadAt(buf, 9)
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "dictiona", string(buf))

	full, err := b.Bytes()
	assert.NoError(t, err)
	assert.Equal(t, b.data, full)

	_, err = b.ReadAt(buf, 1000)
	assert.Equal(t, io.EOF, err)

	_, err = b.ReadAt(buf, -1)
	assert.Error(t, err)

	assert.NoError(t, b.Close())
}

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "bucket", "root")
	assert.Equal(t, "root/system.dict", s.key("system.dict"))
}
