package tategaki

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tategaki/tategaki/testutil"
)

func TestRepository_ListAndLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testutil.WriteArchiveFile(dir+"/sys.dict", []testutil.SampleWord{
		{Surface: "東京", LeftID: 10, RightID: 10, WordCost: -500, Feature: "名詞,固有名詞,*,*,*,*,東京"},
	}, nil))
	require.NoError(t, testutil.WriteArchiveFile(dir+"/user.dict", nil, nil))

	repo := OpenRepository(dir)

	names, err := repo.List()
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"sys.dict", "user.dict"}, names)

	dict, err := repo.Load("sys.dict")
	require.NoError(t, err)
	defer dict.Close()

	tok := New(dict)
	w := tok.NewWorker()
	w.SetText([]byte("東京"))
	require.NoError(t, w.Tokenize())

	var surfaces []string
	for tk := range w.Tokens() {
		surfaces = append(surfaces, tk.Surface)
	}
	assert.Equal(t, []string{"東京"}, surfaces)
}

func TestRepository_LoadMissing(t *testing.T) {
	repo := OpenRepository(t.TempDir())
	_, err := repo.Load("missing.dict")
	assert.Error(t, err)
}
