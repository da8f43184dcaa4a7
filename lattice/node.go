package lattice

import "github.com/tategaki/tategaki/core"

// Node is one ending node at some byte offset: a candidate word edge
// in the lattice along with its cheapest predecessor. BestPrev indexes
// into the predecessor offset's node slice (nodes[PredOffset]), not a
// global node index: every candidate predecessor for a node lives
// there by construction.
type Node struct {
	Begin int
	End   int
	Word  core.WordIdx

	// WordCost is the word's own cost plus, for connector variants
	// that bake in a right-context bias (connector.RightBiased), that
	// bias added once at node-creation time.
	WordCost int32

	LeftID  uint16
	RightID uint16

	MinTotal int32
	BestPrev int32 // index into nodes[PredOffset], or -1 for BOS

	// PredOffset is the lattice offset whose node slice BestPrev
	// indexes into. It equals Begin except for a candidate immediately
	// following an ignore_space whitespace run, where no node is ever
	// inserted for the gap itself: PredOffset stays pinned at the real
	// pre-whitespace offset so cost lookups see the true neighboring
	// word's LeftID/RightID (never a BOS/EOS sentinel id) while Begin
	// still reports the word's own, post-whitespace surface start.
	PredOffset int
}
