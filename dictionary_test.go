package tategaki

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tategaki/tategaki/core"
	"github.com/tategaki/tategaki/persistence"
	"github.com/tategaki/tategaki/testutil"
)

func writeSampleDict(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, testutil.WriteArchiveFile(path, []testutil.SampleWord{
		{Surface: "東京", LeftID: 10, RightID: 10, WordCost: -500, Feature: "名詞,固有名詞,地域,一般,*,*,東京"},
		{Surface: "東", LeftID: 20, RightID: 20, WordCost: 100, Feature: "名詞,一般,*,*,*,*,東"},
	}, nil))
	return path
}

func TestLoad_OpensAndDecodes(t *testing.T) {
	path := writeSampleDict(t, "sys.dict")

	dict, err := Load(path)
	require.NoError(t, err)
	defer dict.Close()

	assert.NotEmpty(t, dict.Hash())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.dict"))
	assert.Error(t, err)
}

func TestLoad_TrustCacheSkipsValidationOnSecondOpen(t *testing.T) {
	path := writeSampleDict(t, "sys.dict")
	cacheDir := t.TempDir()

	d1, err := Load(path, WithGlobalCacheDir(cacheDir), WithTrustCache())
	require.NoError(t, err)
	require.NoError(t, d1.Close())

	d2, err := Load(path, WithGlobalCacheDir(cacheDir), WithTrustCache())
	require.NoError(t, err)
	defer d2.Close()

	assert.Equal(t, d1.Hash(), d2.Hash())
	assert.NotEmpty(t, d2.Hash())
}

func TestLoadZstd_MatchesPlainLoadAndReusesCache(t *testing.T) {
	path := writeSampleDict(t, "sys.dict")
	plain, err := os.ReadFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(plain)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "sys.dict.zst")
	require.NoError(t, os.WriteFile(src, buf.Bytes(), 0644))

	cacheDir := t.TempDir()

	want, err := Load(path)
	require.NoError(t, err)
	defer want.Close()

	got, err := LoadZstd(context.Background(), src, cacheDir)
	require.NoError(t, err)
	defer got.Close()

	srcHash, err := persistence.MetadataHashOfFile(src)
	require.NoError(t, err)
	cacheHash, err := persistence.MetadataHashOfFile(filepath.Join(cacheDir, srcHash+".dic"))
	require.NoError(t, err)
	assert.Equal(t, cacheHash, got.Hash(), "got is loaded from the decompressed cache file and reports that file's metadata hash")

	wantWorker := New(want).NewWorker()
	wantWorker.SetText([]byte("東京は晴れ"))
	require.NoError(t, wantWorker.Tokenize())
	var wantTokens []Token
	for tok := range wantWorker.Tokens() {
		wantTokens = append(wantTokens, tok)
	}

	gotWorker := New(got).NewWorker()
	gotWorker.SetText([]byte("東京は晴れ"))
	require.NoError(t, gotWorker.Tokenize())
	var gotTokens []Token
	for tok := range gotWorker.Tokens() {
		gotTokens = append(gotTokens, tok)
	}

	assert.Equal(t, wantTokens, gotTokens)

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "the decompressed file must be named after src's own metadata hash")
	cachedPath := filepath.Join(cacheDir, entries[0].Name())

	again, err := LoadZstd(context.Background(), src, cacheDir)
	require.NoError(t, err)
	defer again.Close()
	assert.Equal(t, got.Hash(), again.Hash())

	stillOnlyOne, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.Len(t, stillOnlyOne, 1, "a second LoadZstd against the same src must reuse the cached file, not create a new one")
	assert.Equal(t, cachedPath, filepath.Join(cacheDir, stillOnlyOne[0].Name()))
}

func TestLoadUnchecked(t *testing.T) {
	path := writeSampleDict(t, "sys.dict")

	dict, err := LoadUnchecked(path)
	require.NoError(t, err)
	defer dict.Close()

	assert.Empty(t, dict.Hash(), "LoadUnchecked has no metadata-hash cache marker to report")
}

func TestDictionary_CloseNil(t *testing.T) {
	var d *Dictionary
	assert.NoError(t, d.Close())
	assert.Empty(t, d.Hash())
}

func TestDictionary_WithUserLexicon(t *testing.T) {
	path := writeSampleDict(t, "sys.dict")

	dict, err := Load(path)
	require.NoError(t, err)
	defer dict.Close()

	before := New(dict).NewWorker()
	before.SetText([]byte("京都"))
	require.NoError(t, before.Tokenize())
	for tok := range before.Tokens() {
		assert.Equal(t, core.Unknown, tok.Word.LexType, "京都 isn't in the system lexicon yet")
	}

	csv := "京都,10,10,-1000,名詞,固有名詞,地域,一般,*,*,京都\n"
	withUser, err := dict.WithUserLexicon(strings.NewReader(csv))
	require.NoError(t, err)
	defer withUser.Close()

	after := New(withUser).NewWorker()
	after.SetText([]byte("京都"))
	require.NoError(t, after.Tokenize())
	var afterTokens []Token
	for tok := range after.Tokens() {
		afterTokens = append(afterTokens, tok)
	}
	require.Len(t, afterTokens, 1)
	assert.Equal(t, "京都", afterTokens[0].Surface)
	assert.Equal(t, "名詞,固有名詞,地域,一般,*,*,京都", afterTokens[0].Feature)
	assert.Equal(t, core.User, afterTokens[0].Word.LexType)

	// withUser shares dict's underlying mapping, so it reports the same
	// metadata hash.
	assert.Equal(t, dict.Hash(), withUser.Hash())
}

func TestDictionary_WithUserLexicon_NilRemovesUserLexicon(t *testing.T) {
	path := writeSampleDict(t, "sys.dict")

	dict, err := Load(path)
	require.NoError(t, err)
	defer dict.Close()

	withUser, err := dict.WithUserLexicon(strings.NewReader("京都,10,10,-1000,名詞,固有名詞,地域,一般,*,*,京都\n"))
	require.NoError(t, err)
	defer withUser.Close()

	cleared, err := withUser.WithUserLexicon(nil)
	require.NoError(t, err)
	defer cleared.Close()

	w := New(cleared).NewWorker()
	w.SetText([]byte("京都"))
	require.NoError(t, w.Tokenize())
	for tok := range w.Tokens() {
		assert.Equal(t, core.Unknown, tok.Word.LexType, "user lexicon was cleared")
	}
}
