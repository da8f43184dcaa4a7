package lexicon

import "github.com/tategaki/tategaki/core"

// WordParam is the per-word_id (left_id, right_id, word_cost) triple
// every lexicon entry carries.
type WordParam struct {
	LeftID   uint16
	RightID  uint16
	WordCost int16
}

// Match is one terminal hit during common-prefix iteration: the byte
// offset the match ends at, and every word_id sharing that surface
// (homographs).
type Match struct {
	End     int
	WordIDs []uint32
}

// View is the read-only contract every lexicon representation
// satisfies, whether backed by freshly built owned slices (Builder.
// Freeze) or by a zero-copy decode of a mapped section (Decode). Every
// accessor is O(1)/O(k); WordFeature is the only one that allocates,
// copying the feature bytes into a new string.
type View interface {
	// LexType reports which namespace this lexicon's word_ids live in.
	LexType() core.LexType
	// NumWords reports the number of word_id entries.
	NumWords() int
	// CommonPrefixMatches calls fn once per terminal state reached
	// while walking input[from:] byte by byte, in increasing end-offset
	// order, until the trie has no further transition. Empty matches
	// (end == from) are never emitted.
	CommonPrefixMatches(input []byte, from int, fn func(Match))
	// WordParam returns the (left_id, right_id, word_cost) triple for
	// wordID. The caller asserts wordID < NumWords().
	WordParam(wordID uint32) WordParam
	// WordFeature returns the feature string for wordID.
	WordFeature(wordID uint32) string
}

// Lexicon is the concrete representation backing both a freshly built
// (owned) lexicon and a zero-copy decoded (archived) one: the two
// differ only in whether their slices were allocated by make() or
// reinterpreted in place over mapped bytes via
// persistence.SliceReader's *SliceView accessors, a distinction this
// type is deliberately indifferent to.
type Lexicon struct {
	lexType core.LexType

	da DoubleArray

	// TermOffset/TermCount index into TermWordIDs per state: a
	// terminal state s has TermCount[s] word_ids starting at
	// TermWordIDs[TermOffset[s]:]. Non-terminal states have
	// TermCount[s] == 0.
	TermOffset []int32
	TermCount  []int32
	TermWordIDs []uint32

	WordLeft  []uint16
	WordRight []uint16
	WordCost  []int16

	// FeatureOffset has NumWords()+1 entries; word i's feature string
	// is FeatureBlob[FeatureOffset[i]:FeatureOffset[i+1]].
	FeatureOffset []uint32
	FeatureBlob   []byte
}

func (l *Lexicon) LexType() core.LexType { return l.lexType }

func (l *Lexicon) NumWords() int { return len(l.WordLeft) }

func (l *Lexicon) WordParam(wordID uint32) WordParam {
	return WordParam{
		LeftID:   l.WordLeft[wordID],
		RightID:  l.WordRight[wordID],
		WordCost: l.WordCost[wordID],
	}
}

func (l *Lexicon) WordFeature(wordID uint32) string {
	start, end := l.FeatureOffset[wordID], l.FeatureOffset[wordID+1]
	return string(l.FeatureBlob[start:end])
}

// CommonPrefixMatches walks the double array one byte at a time from
// Root, emitting a Match at
// every terminal state encountered, stopping at the first byte with no
// valid transition or at the end of input.
func (l *Lexicon) CommonPrefixMatches(input []byte, from int, fn func(Match)) {
	if from >= len(input) {
		return
	}
	state := Root
	for i := from; i < len(input); i++ {
		next, ok := l.da.Transition(state, input[i])
		if !ok {
			return
		}
		state = next
		if int(state) < len(l.TermCount) && l.TermCount[state] > 0 {
			off := l.TermOffset[state]
			cnt := l.TermCount[state]
			fn(Match{End: i + 1, WordIDs: l.TermWordIDs[off : off+cnt]})
		}
	}
}

var _ View = (*Lexicon)(nil)
