package connector

// View is the read-only contract every connector variant satisfies:
// bounds plus the pairwise cost lookup.
type View interface {
	NumLeft() int
	NumRight() int
	// Cost returns the bigram connection cost between the previous
	// node's right_id and the next node's left_id. Always defined;
	// BOS/EOS use id 0 at the boundaries.
	Cost(rightIDPrev, leftIDNext uint16) int32
}

// RightBiased is implemented by connector variants (Dual) that require
// the lattice builder to add a per-node bias into a node's word_cost
// at creation time, before Cost is ever called with that node's
// right_id as the "previous" side. Variants without this need (Matrix,
// Raw) simply don't implement it; the lattice package type-asserts for
// it and treats a missing implementation as a zero bias.
type RightBiased interface {
	// RightContextBias returns the component of every future
	// Cost(rightID, *) call that depends only on rightID, already
	// extracted out of the stored table. The lattice builder adds this
	// once into the node's word_cost when the node carrying rightID as
	// its own right_id is created.
	RightContextBias(rightID uint16) int32
}

// RightBias returns v.RightContextBias(rightID) if v implements
// RightBiased, else 0.
func RightBias(v View, rightID uint16) int32 {
	if rb, ok := v.(RightBiased); ok {
		return rb.RightContextBias(rightID)
	}
	return 0
}
