package lattice

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/tategaki/tategaki/charclass"
	"github.com/tategaki/tategaki/connector"
	"github.com/tategaki/tategaki/core"
	"github.com/tategaki/tategaki/lexicon"
)

// Dictionary is the immutable read-only view a Lattice searches
// against: system lexicon plus an optional user lexicon, a connector
// and an unknown-word handler. Built by the root tategaki package and
// shared across any number of workers.
type Dictionary struct {
	System  lexicon.View
	User    lexicon.View // nil if absent
	Unknown *charclass.UnknownHandler

	// UnknownLexicon is the dense (word_id -> left_id, right_id,
	// word_cost, feature) table backing every core.Unknown WordIdx a
	// Candidate resolves to (word_id equal to the Candidate's
	// Category), the same word_param/word_feature dispatch System and
	// User words get. Never nil for a Dictionary built by decodeRoot or
	// testutil.BuildSampleDictionary.
	UnknownLexicon lexicon.View

	Connector connector.View
}

// unknownWordParam looks up the (left_id, right_id, word_cost) triple
// for a synthesized candidate of category c via its dense word_id in
// UnknownLexicon.
func (d *Dictionary) unknownWordParam(c charclass.Category) lexicon.WordParam {
	return d.UnknownLexicon.WordParam(uint32(c))
}

// lexicons returns every configured lexicon in match-priority order:
// system first, then user. Every common-prefix match from every
// lexicon becomes a candidate edge; which one wins is left to the
// Viterbi cost comparison, not lexicon order.
func (d *Dictionary) lexicons() []lexicon.View {
	if d.User != nil {
		return []lexicon.View{d.System, d.User}
	}
	return []lexicon.View{d.System}
}

// Options are the per-call tokenization flags.
type Options struct {
	IgnoreSpace    bool
	MaxGroupingLen uint16
}

// Token is one emitted morpheme: its byte span, dictionary identity
// and feature string.
type Token struct {
	Begin, End int
	Word       core.WordIdx
	Feature    string
}

// Stats carries ambient observability for the lattice layer: how many
// byte offsets required the must-make-progress unknown-word fallback.
// Exposed via Worker.Stats() in the root package.
type Stats struct {
	FallbackOffsets *roaring.Bitmap
}

// Lattice is the per-worker reused buffer: for each byte offset
// 0..=len(input), the list of nodes ending there. Capacity grows,
// never shrinks, across calls to Forward.
type Lattice struct {
	nodes [][]Node

	// predSource redirects the predecessor lookup for an offset that
	// was reached by skipping an ignore_space whitespace run straight
	// to the offset where the run began, since no bridge node is ever
	// inserted for the gap itself (see Node.PredOffset). -1 means no
	// redirect: the offset is its own predecessor source.
	predSource []int32

	stats Stats
}

// New returns an empty Lattice ready for its first Forward call.
func New() *Lattice {
	return &Lattice{stats: Stats{FallbackOffsets: roaring.New()}}
}

// Reset clears per-call state while keeping allocated capacity, ready
// for the next Forward call.
func (l *Lattice) Reset(inputLen int) {
	if cap(l.nodes) < inputLen+1 {
		grown := make([][]Node, inputLen+1)
		copy(grown, l.nodes)
		l.nodes = grown

		grownSrc := make([]int32, inputLen+1)
		copy(grownSrc, l.predSource)
		l.predSource = grownSrc
	}
	l.nodes = l.nodes[:inputLen+1]
	for i := range l.nodes {
		l.nodes[i] = l.nodes[i][:0]
	}
	l.predSource = l.predSource[:inputLen+1]
	for i := range l.predSource {
		l.predSource[i] = -1
	}
	l.stats.FallbackOffsets.Clear()
}

// predecessorOf resolves the real offset whose node slice a candidate
// starting at offset must read predecessors from: offset itself,
// unless a whitespace run was skipped to reach it.
func (l *Lattice) predecessorOf(offset int) int {
	if p := l.predSource[offset]; p >= 0 {
		return int(p)
	}
	return offset
}

// bridgeWhitespace records that offset was reached by skipping a
// whitespace run that began at predOffset: no node is inserted for the
// gap, so future candidates starting at offset must look up
// predecessors at predOffset instead.
func (l *Lattice) bridgeWhitespace(offset, predOffset int) {
	l.predSource[offset] = int32(predOffset)
}

// NodesAt returns the nodes ending at byte offset b, valid only after
// a Forward call and only until the next Reset.
func (l *Lattice) NodesAt(b int) []Node { return l.nodes[b] }

// Stats returns the fallback-offset counter accumulated by the most
// recent Forward call.
func (l *Lattice) Stats() Stats { return l.stats }
