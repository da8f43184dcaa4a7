package connector

import (
	"fmt"

	"github.com/tategaki/tategaki/persistence"
)

// WriteMatrix serializes m as: NumLeft, NumRight, Table.
func WriteMatrix(bw *persistence.BinaryWriter, m *Matrix) error {
	if err := bw.WriteUint32(uint32(m.NumLeftV)); err != nil {
		return err
	}
	if err := bw.WriteUint32(uint32(m.NumRightV)); err != nil {
		return err
	}
	return bw.WriteInt16Slice(m.Table)
}

// DecodeMatrix decodes a section written by WriteMatrix, zero-copy over data.
func DecodeMatrix(data []byte) (*Matrix, error) {
	r := persistence.NewSliceReader(data)
	numLeft, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	numRight, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	table, err := r.ReadInt16SliceView(int(numLeft) * int(numRight))
	if err != nil {
		return nil, err
	}
	return &Matrix{NumLeftV: int(numLeft), NumRightV: int(numRight), Table: table}, nil
}

// WriteDual serializes d as: NumLeft, NumRight, NumBuckets,
// RightBaseline, BucketOf, BucketTable.
func WriteDual(bw *persistence.BinaryWriter, d *Dual) error {
	for _, v := range []uint32{uint32(d.NumLeftV), uint32(d.NumRightV), uint32(d.NumBuckets)} {
		if err := bw.WriteUint32(v); err != nil {
			return err
		}
	}
	u32 := make([]uint32, len(d.RightBaseline))
	for i, v := range d.RightBaseline {
		u32[i] = uint32(v)
	}
	if err := bw.WriteUint32Slice(u32); err != nil {
		return err
	}
	if err := bw.WriteUint16Slice(d.BucketOf); err != nil {
		return err
	}
	if err := bw.PadToAlignment(0, 4); err != nil {
		return err
	}
	return bw.WriteInt16Slice(d.BucketTable)
}

// DecodeDual decodes a section written by WriteDual.
func DecodeDual(data []byte) (*Dual, error) {
	r := persistence.NewSliceReader(data)
	numLeft, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	numRight, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	numBuckets, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	baselineU32, err := r.ReadUint32SliceView(int(numRight))
	if err != nil {
		return nil, err
	}
	bucketOf, err := r.ReadUint16SliceView(int(numRight))
	if err != nil {
		return nil, err
	}
	if rem := r.Offset() % 4; rem != 0 {
		if _, err := r.ReadBytes(4 - rem); err != nil {
			return nil, err
		}
	}
	bucketTable, err := r.ReadInt16SliceView(int(numBuckets) * int(numLeft))
	if err != nil {
		return nil, err
	}
	baseline := make([]int32, len(baselineU32))
	for i, v := range baselineU32 {
		baseline[i] = int32(v)
	}
	return &Dual{
		NumLeftV:      int(numLeft),
		NumRightV:     int(numRight),
		RightBaseline: baseline,
		BucketOf:      bucketOf,
		BucketTable:   bucketTable,
		NumBuckets:    int(numBuckets),
	}, nil
}

// WriteRaw serializes r as: NumLeft, NumRight, PaletteLen, Palette, Indices.
func WriteRaw(bw *persistence.BinaryWriter, raw *Raw) error {
	for _, v := range []uint32{uint32(raw.NumLeftV), uint32(raw.NumRightV), uint32(len(raw.Palette))} {
		if err := bw.WriteUint32(v); err != nil {
			return err
		}
	}
	if err := bw.WriteInt16Slice(raw.Palette); err != nil {
		return err
	}
	if err := bw.PadToAlignment(0, 4); err != nil {
		return err
	}
	return bw.WriteUint16Slice(raw.Indices)
}

// DecodeRaw decodes a section written by WriteRaw.
func DecodeRaw(data []byte) (*Raw, error) {
	r := persistence.NewSliceReader(data)
	numLeft, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	numRight, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	paletteLen, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	palette, err := r.ReadInt16SliceView(int(paletteLen))
	if err != nil {
		return nil, err
	}
	if rem := r.Offset() % 4; rem != 0 {
		if _, err := r.ReadBytes(4 - rem); err != nil {
			return nil, err
		}
	}
	indices, err := r.ReadUint16SliceView(int(numLeft) * int(numRight))
	if err != nil {
		return nil, err
	}
	return &Raw{NumLeftV: int(numLeft), NumRightV: int(numRight), Palette: palette, Indices: indices}, nil
}

// Decode dispatches on kind to the matching decoder, returning a View.
func Decode(kind persistence.ConnectorKind, data []byte) (View, error) {
	switch kind {
	case persistence.ConnectorMatrix:
		return DecodeMatrix(data)
	case persistence.ConnectorDual:
		return DecodeDual(data)
	case persistence.ConnectorRaw:
		return DecodeRaw(data)
	default:
		return nil, fmt.Errorf("connector: unknown kind %d", kind)
	}
}
