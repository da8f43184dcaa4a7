package connector

// IDMapper holds an optional left/right permutation pair: connection
// IDs baked into the lexicon and connector at
// build time are already permuted, so applying the mapper is a
// build-time-only operation; load-time consumers never see it.
//
// Follows the external-key-to-dense-internal-id remapping idiom common
// in columnar stores, repurposed here for connection-id permutation
// instead of row ids.
type IDMapper struct {
	// LeftPerm[old] = new for left connection ids.
	LeftPerm []uint16
	// RightPerm[old] = new for right connection ids.
	RightPerm []uint16
}

// NewIdentityMapper returns a mapper that leaves every id unchanged,
// the state a dictionary has before any reordering pass runs.
func NewIdentityMapper(numLeft, numRight int) *IDMapper {
	m := &IDMapper{
		LeftPerm:  make([]uint16, numLeft),
		RightPerm: make([]uint16, numRight),
	}
	for i := range m.LeftPerm {
		m.LeftPerm[i] = uint16(i)
	}
	for i := range m.RightPerm {
		m.RightPerm[i] = uint16(i)
	}
	return m
}

// MapLeft translates an old left id to its new value.
func (m *IDMapper) MapLeft(old uint16) uint16 { return m.LeftPerm[old] }

// MapRight translates an old right id to its new value.
func (m *IDMapper) MapRight(old uint16) uint16 { return m.RightPerm[old] }

// PermuteMatrix returns a new Matrix with rows/columns reordered
// according to m, applied once at build time; idempotent in the sense
// that applying NewIdentityMapper is a no-op copy.
func (m *IDMapper) PermuteMatrix(src *Matrix) *Matrix {
	numLeft, numRight := src.NumLeftV, src.NumRightV
	table := make([]int16, len(src.Table))
	for oldR := 0; oldR < numRight; oldR++ {
		newR := int(m.RightPerm[oldR])
		for oldL := 0; oldL < numLeft; oldL++ {
			newL := int(m.LeftPerm[oldL])
			table[newR*numLeft+newL] = src.Table[oldR*numLeft+oldL]
		}
	}
	return &Matrix{NumLeftV: numLeft, NumRightV: numRight, Table: table}
}
