// Package testutil provides small, self-contained helpers for
// exercising the tokenizer packages without loading a real archived
// dictionary: a seeded RNG for generating mixed-script input text, a
// synthetic in-memory dictionary builder, and a token-sequence
// comparison helper for table-driven tests.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/tategaki/tategaki/charclass"
	"github.com/tategaki/tategaki/connector"
	"github.com/tategaki/tategaki/core"
	"github.com/tategaki/tategaki/lattice"
	"github.com/tategaki/tategaki/lexicon"
	"github.com/tategaki/tategaki/persistence"
)

// RNG wraps math/rand.Rand with a recorded seed and a mutex, so the
// same instance can be shared across parallel subtests.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates an RNG seeded deterministically.
func NewRNG(seed int64) *RNG {
	return &RNG{rand: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 { return r.seed }

// Reset rewinds the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

var mixedScriptAlphabet = []rune{
	'日', '本', '語', '東', '京', // kanji
	'あ', 'い', 'う', 'え', 'お', // hiragana
	'ア', 'イ', 'ウ', 'エ', 'オ', // katakana
	'a', 'b', 'c', 'A', 'B', // latin
	'0', '1', '2', '9', // digits
	' ', // space
}

// RandomText returns a pseudo-random string of n code points drawn
// from a fixed mixed-script alphabet (kanji, kana, latin, digits,
// space), for fuzz-style coverage of the unknown-word path alongside
// fixed-surface lexicon matches.
func (r *RNG) RandomText(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]rune, n)
	for i := range out {
		out[i] = mixedScriptAlphabet[r.rand.Intn(len(mixedScriptAlphabet))]
	}
	return string(out)
}

// SampleWord is one entry to register in a SampleDictionary.
type SampleWord struct {
	Surface  string
	LeftID   uint16
	RightID  uint16
	WordCost int16
	Feature  string
}

// SampleDictionary bundles a small lattice.Dictionary with the word
// lists used to build it, so a test can both tokenize against it and
// assert against the exact entries it registered.
type SampleDictionary struct {
	Dict   *lattice.Dictionary
	System []SampleWord
	User   []SampleWord
}

// numConnectionIDs is the left/right id space shared by every
// sample word below and by charclass.DefaultTable's category rules,
// so a connector.Matrix sized to it prices every edge a test lattice
// can produce.
const numConnectionIDs = 200

// BuildSampleDictionary assembles a minimal but complete
// lattice.Dictionary: a system lexicon (plus an optional user lexicon
// when userWords is non-empty), a dense connector.Matrix with uniform
// connection costs, and charclass.DefaultTable for unknown-word
// fallback. It is grounded the same way a real dictionary is built —
// lexicon.Builder.Add/Freeze, connector.NewMatrix, charclass.Decode's
// build-time counterpart — just skipping the archive encode/decode
// round trip a loaded dictionary goes through.
func BuildSampleDictionary(systemWords, userWords []SampleWord) *SampleDictionary {
	sysLex := freezeLexicon(core.System, systemWords)

	var userLex lexicon.View
	if len(userWords) > 0 {
		userLex = freezeLexicon(core.User, userWords)
	}

	table := make([]int16, numConnectionIDs*numConnectionIDs)
	for i := range table {
		table[i] = 0
	}
	conn := connector.NewMatrix(numConnectionIDs, numConnectionIDs, table)

	charTable := charclass.DefaultTable()
	return &SampleDictionary{
		Dict: &lattice.Dictionary{
			System:         sysLex,
			User:           userLex,
			Unknown:        charclass.NewUnknownHandler(charTable),
			UnknownLexicon: charclass.BuildUnknownLexicon(charTable),
			Connector:      conn,
		},
		System: systemWords,
		User:   userWords,
	}
}

func freezeLexicon(lexType core.LexType, words []SampleWord) lexicon.View {
	b := lexicon.NewBuilder(lexType)
	for _, w := range words {
		b.Add([]byte(w.Surface), w.LeftID, w.RightID, w.WordCost, w.Feature)
	}
	l, _ := b.Freeze()
	return l
}

// TokenSurfaces extracts the surface substring of every token in text
// for the given spans, for comparing a tokenize result against an
// expected surface list without threading byte offsets through every
// test case.
func TokenSurfaces(text []byte, toks []lattice.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = string(text[t.Begin:t.End])
	}
	return out
}

// DescribeToken renders a token as "surface[begin:end]/lextype" for failure
// messages.
func DescribeToken(text []byte, t lattice.Token) string {
	return fmt.Sprintf("%s[%d:%d]/%s", text[t.Begin:t.End], t.Begin, t.End, t.Word.LexType)
}

// BuildArchiveBytes serializes a sample dictionary to the on-disk
// container format persistence.Load expects, the same section layout a
// real dictionary compiler would produce: system lexicon, optional
// user lexicon, the unknown lexicon charclass.BuildUnknownLexicon
// derives from charclass.DefaultTable (one dense word_id per
// category), a dense connector.Matrix, and the char class table
// itself. It exists so root-package tests can exercise
// Load/LoadZstd/Repository end to end against a real file instead of
// only the in-memory path BuildSampleDictionary gives lattice tests.
func BuildArchiveBytes(systemWords, userWords []SampleWord) []byte {
	sysLex := freezeLexiconRaw(core.System, systemWords)
	sysBytes := encodeSection(sysLex.WriteTo)

	var userBytes []byte
	if len(userWords) > 0 {
		userLex := freezeLexiconRaw(core.User, userWords)
		userBytes = encodeSection(userLex.WriteTo)
	}

	charTable := charclass.DefaultTable()
	unkLex := charclass.BuildUnknownLexicon(charTable)
	unkBytes := encodeSection(unkLex.WriteTo)

	table := make([]int16, numConnectionIDs*numConnectionIDs)
	matrix := connector.NewMatrix(numConnectionIDs, numConnectionIDs, table)
	connBytes := encodeSection(func(bw *persistence.BinaryWriter) error {
		return connector.WriteMatrix(bw, matrix)
	})

	charsBytes := encodeSection(charTable.WriteTo)

	h := &persistence.RootHeader{
		SysLexiconSize:  uint64(len(sysBytes)),
		UserLexiconSize: uint64(len(userBytes)),
		UnkLexiconSize:  uint64(len(unkBytes)),
		ConnectorSize:   uint64(len(connBytes)),
		CharTableSize:   uint64(len(charsBytes)),
	}
	h.SetHasUserLexicon(len(userBytes) > 0)
	h.SetConnectorKind(persistence.ConnectorMatrix)

	var buf bytes.Buffer
	bw := persistence.NewBinaryWriter(&buf)
	must(bw.WriteMagicAndPadding())
	must(bw.WriteRootHeader(h))
	must(bw.WriteRaw(sysBytes))
	must(bw.WriteRaw(userBytes))
	must(bw.WriteRaw(unkBytes))
	must(bw.WriteRaw(connBytes))
	must(bw.WriteRaw(charsBytes))
	must(bw.Flush())
	return buf.Bytes()
}

func freezeLexiconRaw(lexType core.LexType, words []SampleWord) *lexicon.Lexicon {
	b := lexicon.NewBuilder(lexType)
	for _, w := range words {
		b.Add([]byte(w.Surface), w.LeftID, w.RightID, w.WordCost, w.Feature)
	}
	l, _ := b.Freeze()
	return l
}

func encodeSection(writeTo func(*persistence.BinaryWriter) error) []byte {
	var buf bytes.Buffer
	bw := persistence.NewBinaryWriter(&buf)
	must(writeTo(bw))
	must(bw.Flush())
	return buf.Bytes()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// WriteArchiveFile writes BuildArchiveBytes's output to path, for
// tests that need a real file to pass to tategaki.Load/LoadZstd or a
// blobstore.BlobStore.
func WriteArchiveFile(path string, systemWords, userWords []SampleWord) error {
	data := BuildArchiveBytes(systemWords, userWords)
	return persistence.SaveToFile(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
