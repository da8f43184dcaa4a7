package tategaki

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tategaki/tategaki/resource"
)

func TestTokenizeBatch_ProcessesEveryText(t *testing.T) {
	tok := newSampleTokenizer(t)

	texts := [][]byte{[]byte("東京"), []byte("東"), []byte("東京"), []byte("xyz")}
	results, err := tok.TokenizeBatch(context.Background(), texts, nil)
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	for i, toks := range results {
		require.NotEmpty(t, toks, "text %d produced no tokens", i)
		var rebuilt string
		for _, tk := range toks {
			rebuilt += tk.Surface
		}
		assert.Equal(t, string(texts[i]), rebuilt)
	}
}

func TestTokenizeBatch_WithResourceController(t *testing.T) {
	tok := newSampleTokenizer(t)
	rc := resource.NewController(resource.Config{MaxConcurrentWorkers: 2, MaxInFlightTextBytes: 1024})

	texts := [][]byte{[]byte("東京"), []byte("東"), []byte("東京"), []byte("東")}
	results, err := tok.TokenizeBatch(context.Background(), texts, rc)
	require.NoError(t, err)
	assert.Len(t, results, len(texts))
	assert.Zero(t, rc.TextBytesInFlight(), "every reservation must be released once the batch completes")
}
