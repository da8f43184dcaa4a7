package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tategaki/tategaki/lattice"
	"github.com/tategaki/tategaki/persistence"
)

func TestRNG_RandomText(t *testing.T) {
	rng := NewRNG(4711)
	text := rng.RandomText(32)
	assert.Equal(t, 32, len([]rune(text)))

	rng.Reset()
	text2 := rng.RandomText(32)
	assert.Equal(t, text, text2, "Reset should make generation deterministic")
}

func TestRNG_Intn(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 100; i++ {
		n := rng.Intn(10)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 10)
	}
}

func TestBuildSampleDictionary_TokenizesKnownWord(t *testing.T) {
	sample := BuildSampleDictionary([]SampleWord{
		{Surface: "東京", LeftID: 10, RightID: 10, WordCost: -500, Feature: "名詞,固有名詞,地域,一般,*,*,東京"},
		{Surface: "東", LeftID: 20, RightID: 20, WordCost: 100, Feature: "名詞,一般,*,*,*,*,東"},
	}, nil)

	text := []byte("東京")
	toks := lattice.Forward(lattice.New(), sample.Dict, text, lattice.Options{})
	require.NotEmpty(t, toks)
	assert.Equal(t, []string{"東京"}, TokenSurfaces(text, toks))
}

func TestBuildSampleDictionary_UnknownFallback(t *testing.T) {
	sample := BuildSampleDictionary(nil, nil)

	text := []byte("xyz")
	toks := lattice.Forward(lattice.New(), sample.Dict, text, lattice.Options{})
	require.NotEmpty(t, toks)

	var covered int
	for _, tok := range toks {
		assert.Equal(t, covered, tok.Begin, "tokens must tile the input without gaps or overlap")
		covered = tok.End
	}
	assert.Equal(t, len(text), covered)
}

func TestBuildArchiveBytes_RoundTripsThroughPersistenceLoad(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sample.dict"
	require.NoError(t, WriteArchiveFile(path, []SampleWord{
		{Surface: "東京", LeftID: 10, RightID: 10, WordCost: -500, Feature: "名詞,固有名詞,*,*,*,*,東京"},
	}, nil))

	res, err := persistence.Load(path, persistence.Validate, "", nil, nil)
	require.NoError(t, err)
	defer res.Close()

	_, off, err := persistence.ValidateRootHeader(res.Data)
	require.NoError(t, err)
	assert.Greater(t, len(res.Data), off)
}

func TestBuildSampleDictionary_UserLexicon(t *testing.T) {
	sample := BuildSampleDictionary(
		[]SampleWord{{Surface: "東京", LeftID: 10, RightID: 10, WordCost: -500, Feature: "名詞,固有名詞,*,*,*,*,東京"}},
		[]SampleWord{{Surface: "東京タワー", LeftID: 11, RightID: 11, WordCost: -1000, Feature: "名詞,固有名詞,*,*,*,*,東京タワー"}},
	)

	text := []byte("東京タワー")
	toks := lattice.Forward(lattice.New(), sample.Dict, text, lattice.Options{})
	require.NotEmpty(t, toks)
	assert.Equal(t, []string{"東京タワー"}, TokenSurfaces(text, toks))
}
