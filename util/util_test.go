package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRuneAt(t *testing.T) {
	s := []byte("本と")
	r, n := DecodeRuneAt(s, 0)
	assert.Equal(t, '本', r)
	assert.Equal(t, 3, n)

	r, n = DecodeRuneAt(s, 3)
	assert.Equal(t, 'と', r)
	assert.Equal(t, 3, n)
}

func TestDecodeRuneAtOutOfRange(t *testing.T) {
	s := []byte("a")
	r, n := DecodeRuneAt(s, 5)
	assert.Equal(t, rune(0xFFFD), r)
	assert.Equal(t, 0, n)
}

func TestIsWhitespaceByte(t *testing.T) {
	assert.True(t, IsWhitespaceByte(' '))
	assert.True(t, IsWhitespaceByte('\t'))
	assert.False(t, IsWhitespaceByte('a'))
}
