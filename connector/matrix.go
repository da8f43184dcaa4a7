package connector

// Matrix is the dense connection-cost representation: a flat
// num_right x num_left int16 table, fetched with one load.
type Matrix struct {
	NumLeftV  int
	NumRightV int
	Table     []int16
}

// NewMatrix builds a Matrix from a row-major num_right x num_left
// table. The caller retains ownership of table; NewMatrix does not copy.
func NewMatrix(numLeft, numRight int, table []int16) *Matrix {
	return &Matrix{NumLeftV: numLeft, NumRightV: numRight, Table: table}
}

func (m *Matrix) NumLeft() int  { return m.NumLeftV }
func (m *Matrix) NumRight() int { return m.NumRightV }

func (m *Matrix) Cost(rightIDPrev, leftIDNext uint16) int32 {
	return int32(m.Table[int(rightIDPrev)*m.NumLeftV+int(leftIDNext)])
}

var _ View = (*Matrix)(nil)
