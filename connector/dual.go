package connector

// Dual is a cache-locality split of the connection matrix: the
// per-right_id baseline of each matrix row is extracted and baked into
// the owning lattice node's word_cost at node-creation time (via
// RightContextBias), leaving a residual table keyed by a bucket of
// equal residual rows rather than by the full right_id range. In
// IPADIC-scale dictionaries
// most rows collapse to a handful of distinct residual shapes once
// their baseline is removed, shrinking the table the hot loop touches
// by an order of magnitude while remaining exact: Cost(r, l) plus
// RightContextBias(r), summed once per node lifetime, reproduces the
// original matrix exactly.
type Dual struct {
	NumLeftV  int
	NumRightV int

	// RightBaseline[r] is the value subtracted from every entry of
	// row r before bucketing.
	RightBaseline []int32
	// BucketOf[r] indexes into BucketTable.
	BucketOf []uint16
	// BucketTable is NumBuckets x NumLeftV row-major residuals.
	BucketTable []int16
	NumBuckets  int
}

func (d *Dual) NumLeft() int  { return d.NumLeftV }
func (d *Dual) NumRight() int { return d.NumRightV }

func (d *Dual) Cost(rightIDPrev, leftIDNext uint16) int32 {
	b := d.BucketOf[rightIDPrev]
	return int32(d.BucketTable[int(b)*d.NumLeftV+int(leftIDNext)])
}

func (d *Dual) RightContextBias(rightID uint16) int32 {
	return d.RightBaseline[rightID]
}

var (
	_ View        = (*Dual)(nil)
	_ RightBiased = (*Dual)(nil)
)

// NewDualFromMatrix derives an exact Dual encoding of m: each row's
// minimum becomes that right_id's baseline, and rows whose residuals
// are byte-identical after subtracting their baseline share a bucket.
func NewDualFromMatrix(m *Matrix) *Dual {
	numLeft, numRight := m.NumLeftV, m.NumRightV
	baseline := make([]int32, numRight)
	bucketOf := make([]uint16, numRight)
	var table []int16

	seen := make(map[string]uint16, numRight)
	residual := make([]int16, numLeft)

	for r := 0; r < numRight; r++ {
		row := m.Table[r*numLeft : (r+1)*numLeft]
		min := row[0]
		for _, v := range row[1:] {
			if v < min {
				min = v
			}
		}
		baseline[r] = int32(min)
		for i, v := range row {
			residual[i] = v - min
		}
		key := int16sKey(residual)
		bucket, ok := seen[key]
		if !ok {
			bucket = uint16(len(seen))
			seen[key] = bucket
			table = append(table, residual...)
		}
		bucketOf[r] = bucket
	}

	return &Dual{
		NumLeftV:      numLeft,
		NumRightV:     numRight,
		RightBaseline: baseline,
		BucketOf:      bucketOf,
		BucketTable:   table,
		NumBuckets:    len(seen),
	}
}

func int16sKey(xs []int16) string {
	b := make([]byte, len(xs)*2)
	for i, x := range xs {
		b[i*2] = byte(x)
		b[i*2+1] = byte(x >> 8)
	}
	return string(b)
}
