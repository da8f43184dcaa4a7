package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tategaki/tategaki/connector"
)

func sampleConnector() connector.View {
	table := make([]int16, 30*30)
	return connector.NewMatrix(30, 30, table)
}

func TestLoadCSV_ParsesFields(t *testing.T) {
	csv := "東京,10,10,-500,名詞,固有名詞,地域,一般,*,*,東京\n" +
		"に,5,5,100,助詞,格助詞,一般,*,*,*,に\n"

	l, err := LoadCSV(strings.NewReader(csv), sampleConnector())
	require.NoError(t, err)
	require.Equal(t, 2, l.NumWords())

	var ends []int
	l.CommonPrefixMatches([]byte("東京に"), 0, func(m Match) {
		ends = append(ends, m.End)
		for _, id := range m.WordIDs {
			p := l.WordParam(id)
			if m.End == 6 { // "東京" is 6 bytes
				assert.Equal(t, uint16(10), p.LeftID)
				assert.Equal(t, int16(-500), p.WordCost)
				assert.Equal(t, "名詞,固有名詞,地域,一般,*,*,東京", l.WordFeature(id))
			}
		}
	})
	assert.Contains(t, ends, 6)
}

func TestLoadCSV_SkipsBlankLinesAndEmptySurface(t *testing.T) {
	csv := "\n,1,1,0,skip-me\nAB,1,1,0,feat\n\n"
	l, err := LoadCSV(strings.NewReader(csv), sampleConnector())
	require.NoError(t, err)
	assert.Equal(t, 1, l.NumWords())
}

func TestLoadCSV_RejectsShortRow(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("AB,1,1,0\n"), sampleConnector())
	assert.Error(t, err)
}

func TestLoadCSV_RejectsOutOfRangeConnectionID(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("AB,999,1,0,feat\n"), sampleConnector())
	assert.Error(t, err)
}

func TestLoadCSV_FeaturePreservesEmbeddedCommas(t *testing.T) {
	l, err := LoadCSV(strings.NewReader("AB,1,1,0,a,b,c,d\n"), sampleConnector())
	require.NoError(t, err)
	require.Equal(t, 1, l.NumWords())
	assert.Equal(t, "a,b,c,d", l.WordFeature(0))
}
