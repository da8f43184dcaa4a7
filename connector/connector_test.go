package connector

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tategaki/tategaki/persistence"
)

func sampleMatrix() *Matrix {
	// 3 right ids x 4 left ids.
	table := []int16{
		10, 20, 30, 40,
		10, 20, 30, 40, // identical row to right_id 0
		-5, 0, 5, 100,
	}
	return NewMatrix(4, 3, table)
}

func TestMatrixCost(t *testing.T) {
	m := sampleMatrix()
	assert.EqualValues(t, 30, m.Cost(0, 2))
	assert.EqualValues(t, 100, m.Cost(2, 3))
}

func TestDualReproducesMatrixExactly(t *testing.T) {
	m := sampleMatrix()
	d := NewDualFromMatrix(m)

	for r := uint16(0); r < uint16(m.NumRightV); r++ {
		for l := uint16(0); l < uint16(m.NumLeftV); l++ {
			want := m.Cost(r, l)
			got := d.Cost(r, l) + RightBias(d, r)
			assert.Equal(t, want, got, "r=%d l=%d", r, l)
		}
	}
}

func TestDualDedupesIdenticalRows(t *testing.T) {
	m := sampleMatrix()
	d := NewDualFromMatrix(m)
	// rows 0 and 1 are identical, so they must share a bucket.
	assert.Equal(t, d.BucketOf[0], d.BucketOf[1])
	assert.Less(t, d.NumBuckets, m.NumRightV)
}

func TestRawReproducesMatrixExactly(t *testing.T) {
	m := sampleMatrix()
	raw := NewRawFromMatrix(m)
	for r := uint16(0); r < uint16(m.NumRightV); r++ {
		for l := uint16(0); l < uint16(m.NumLeftV); l++ {
			assert.Equal(t, m.Cost(r, l), raw.Cost(r, l))
		}
	}
	// 8 distinct values (10,20,30,40,-5,0,5,100) across 12 cells
	assert.LessOrEqual(t, len(raw.Palette), len(m.Table))
}

func TestMatrixEncodeDecodeRoundTrip(t *testing.T) {
	m := sampleMatrix()
	var buf bytes.Buffer
	bw := persistence.NewBinaryWriter(&buf)
	require.NoError(t, WriteMatrix(bw, m))
	require.NoError(t, bw.Flush())

	decoded, err := DecodeMatrix(buf.Bytes())
	require.NoError(t, err)
	for r := uint16(0); r < uint16(m.NumRightV); r++ {
		for l := uint16(0); l < uint16(m.NumLeftV); l++ {
			assert.Equal(t, m.Cost(r, l), decoded.Cost(r, l))
		}
	}
}

func TestDualEncodeDecodeRoundTrip(t *testing.T) {
	m := sampleMatrix()
	d := NewDualFromMatrix(m)
	var buf bytes.Buffer
	bw := persistence.NewBinaryWriter(&buf)
	require.NoError(t, WriteDual(bw, d))
	require.NoError(t, bw.Flush())

	decoded, err := DecodeDual(buf.Bytes())
	require.NoError(t, err)
	for r := uint16(0); r < uint16(m.NumRightV); r++ {
		for l := uint16(0); l < uint16(m.NumLeftV); l++ {
			want := m.Cost(r, l)
			got := decoded.Cost(r, l) + RightBias(decoded, r)
			assert.Equal(t, want, got)
		}
	}
}

func TestIDMapperIdentityPermuteIsNoOp(t *testing.T) {
	m := sampleMatrix()
	mapper := NewIdentityMapper(m.NumLeftV, m.NumRightV)
	permuted := mapper.PermuteMatrix(m)
	assert.Equal(t, m.Table, permuted.Table)
}

func TestIDMapperPermute(t *testing.T) {
	m := sampleMatrix()
	mapper := NewIdentityMapper(m.NumLeftV, m.NumRightV)
	// swap right ids 0 and 2
	mapper.RightPerm[0], mapper.RightPerm[2] = mapper.RightPerm[2], mapper.RightPerm[0]
	permuted := mapper.PermuteMatrix(m)

	for l := uint16(0); l < uint16(m.NumLeftV); l++ {
		assert.Equal(t, m.Cost(0, l), permuted.Cost(2, l))
		assert.Equal(t, m.Cost(2, l), permuted.Cost(0, l))
	}
}
