package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tategaki/tategaki/core"
	"github.com/tategaki/tategaki/lattice"
	"github.com/tategaki/tategaki/testutil"
)

// k-best output must be sorted by total cost nondecreasing, and its
// first element must equal Forward's single-best result.
func TestKBest_SortedAndFirstMatchesSingleBest(t *testing.T) {
	words := []testutil.SampleWord{
		{Surface: "東京", LeftID: 10, RightID: 10, WordCost: 500},
		{Surface: "東", LeftID: 10, RightID: 10, WordCost: 400},
		{Surface: "京", LeftID: 10, RightID: 10, WordCost: 400},
	}
	d := testutil.BuildSampleDictionary(words, nil)
	text := []byte("東京")

	single := lattice.New()
	best := lattice.Forward(single, d.Dict, text, lattice.Options{MaxGroupingLen: 24})

	l := lattice.New()
	_ = lattice.Forward(l, d.Dict, text, lattice.Options{MaxGroupingLen: 24})
	eosNodes := l.NodesAt(len(text))
	require.NotEmpty(t, eosNodes)
	eosIdx := len(eosNodes) - 1

	paths := lattice.KBest(l, d.Dict, text, len(text), eosIdx, 5)
	require.NotEmpty(t, paths)

	assert.Equal(t, testutil.TokenSurfaces(text, best), testutil.TokenSurfaces(text, paths[0]))

	costs := make([]int32, len(paths))
	for i, p := range paths {
		costs[i] = pathCost(d.Dict, p)
	}
	for i := 1; i < len(costs); i++ {
		assert.LessOrEqual(t, costs[i-1], costs[i], "k-best must be nondecreasing in cost")
	}
}

// pathCost sums the word cost of every token in a path. The sample
// dictionary backing these tests uses a uniform all-zero connector
// matrix (testutil.BuildSampleDictionary), so connector cost never
// contributes and this reduces to a plain word-cost sum, independent
// of the lattice's own MinTotal bookkeeping.
func pathCost(d *lattice.Dictionary, toks []lattice.Token) int32 {
	var total int32
	for _, tk := range toks {
		switch tk.Word.LexType {
		case core.System:
			total += int32(d.System.WordParam(tk.Word.WordID).WordCost)
		case core.User:
			total += int32(d.User.WordParam(tk.Word.WordID).WordCost)
		}
	}
	return total
}

// Every returned k-best path must reconstruct the original input
// exactly, left to right, regardless of which segmentation it picks.
func TestKBest_EveryPathReconstructsInput(t *testing.T) {
	d := testutil.BuildSampleDictionary(nil, nil)
	text := []byte("ABC123")

	l := lattice.New()
	_ = lattice.Forward(l, d.Dict, text, lattice.Options{MaxGroupingLen: 24})
	eosNodes := l.NodesAt(len(text))
	paths := lattice.KBest(l, d.Dict, text, len(text), len(eosNodes)-1, 3)
	require.NotEmpty(t, paths)

	for _, p := range paths {
		var rebuilt string
		for _, tk := range p {
			rebuilt += string(text[tk.Begin:tk.End])
		}
		assert.Equal(t, "ABC123", rebuilt)
	}
}

// k <= 0 yields no paths without panicking.
func TestKBest_NonPositiveKYieldsNothing(t *testing.T) {
	d := testutil.BuildSampleDictionary(nil, nil)
	text := []byte("本")
	l := lattice.New()
	_ = lattice.Forward(l, d.Dict, text, lattice.Options{MaxGroupingLen: 24})
	eosNodes := l.NodesAt(len(text))
	assert.Nil(t, lattice.KBest(l, d.Dict, text, len(text), len(eosNodes)-1, 0))
}
