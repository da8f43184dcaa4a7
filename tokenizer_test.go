package tategaki

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	path := writeSampleDict(t, "sys.dict")
	dict, err := Load(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dict.Close() })
	return New(dict)
}

func TestWorker_TokenizeKnownWord(t *testing.T) {
	tok := newSampleTokenizer(t)
	w := tok.NewWorker()
	w.SetText([]byte("東京"))
	require.NoError(t, w.Tokenize())

	var surfaces []string
	for tk := range w.Tokens() {
		surfaces = append(surfaces, tk.Surface)
	}
	assert.Equal(t, []string{"東京"}, surfaces)
}

func TestWorker_TokenizeWithoutSetTextFails(t *testing.T) {
	tok := newSampleTokenizer(t)
	w := tok.NewWorker()
	assert.ErrorIs(t, w.Tokenize(), ErrInvalidState)
}

func TestWorker_TokenizeKBest(t *testing.T) {
	tok := newSampleTokenizer(t)
	w := tok.NewWorker()
	w.SetText([]byte("東京"))

	paths, err := w.TokenizeKBest(3)
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	// Every returned path must reconstruct the original input exactly,
	// left to right.
	for _, path := range paths {
		var rebuilt string
		for _, tk := range path {
			rebuilt += tk.Surface
		}
		assert.Equal(t, "東京", rebuilt)
	}
}

func TestWorker_TokenizeKBest_RejectsNonPositiveK(t *testing.T) {
	tok := newSampleTokenizer(t)
	w := tok.NewWorker()
	w.SetText([]byte("東京"))
	_, err := w.TokenizeKBest(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWorker_StatsTracksFallback(t *testing.T) {
	tok := newSampleTokenizer(t)
	w := tok.NewWorker()
	w.SetText([]byte("xyz"))
	require.NoError(t, w.Tokenize())

	stats := w.Stats()
	assert.NotNil(t, stats.FallbackOffsets)
}

func TestTokenizer_IgnoreSpace(t *testing.T) {
	path := writeSampleDict(t, "sys.dict")
	dict, err := Load(path)
	require.NoError(t, err)
	defer dict.Close()

	tok := New(dict, WithIgnoreSpace(true))
	w := tok.NewWorker()
	w.SetText([]byte("東京 東"))
	require.NoError(t, w.Tokenize())

	var surfaces []string
	for tk := range w.Tokens() {
		surfaces = append(surfaces, tk.Surface)
	}
	assert.Contains(t, surfaces, "東京")
	assert.Contains(t, surfaces, "東")
}
