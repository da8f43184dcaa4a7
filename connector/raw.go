package connector

// Raw is the compatibility fallback connection-cost representation: a
// palette-indexed exact compaction of the dense matrix. Real
// connection matrices use
// only a few thousand distinct cost values across millions of cells;
// Raw stores each distinct value once in Palette and the table as
// palette indices, which are typically representable in far fewer
// bits than the original i16 range. It is exact, not lossy — every
// Cost call reproduces the source matrix bit for bit.
type Raw struct {
	NumLeftV  int
	NumRightV int
	Palette   []int16
	Indices   []uint16 // num_right x num_left row-major, indexes Palette
}

func (r *Raw) NumLeft() int  { return r.NumLeftV }
func (r *Raw) NumRight() int { return r.NumRightV }

func (r *Raw) Cost(rightIDPrev, leftIDNext uint16) int32 {
	idx := r.Indices[int(rightIDPrev)*r.NumLeftV+int(leftIDNext)]
	return int32(r.Palette[idx])
}

var _ View = (*Raw)(nil)

// NewRawFromMatrix builds the palette encoding of m.
func NewRawFromMatrix(m *Matrix) *Raw {
	palette := make([]int16, 0, 256)
	index := make(map[int16]uint16, 256)
	indices := make([]uint16, len(m.Table))
	for i, v := range m.Table {
		idx, ok := index[v]
		if !ok {
			idx = uint16(len(palette))
			index[v] = idx
			palette = append(palette, v)
		}
		indices[i] = idx
	}
	return &Raw{
		NumLeftV:  m.NumLeftV,
		NumRightV: m.NumRightV,
		Palette:   palette,
		Indices:   indices,
	}
}
