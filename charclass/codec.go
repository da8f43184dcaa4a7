package charclass

import (
	"fmt"

	"github.com/tategaki/tategaki/persistence"
)

// WriteTo serializes t as: TopLen, NumPages, NumRules, Top, Pages,
// then NumRules fixed-size rule records, then the concatenated
// feature-template blob.
func (t *Table) WriteTo(bw *persistence.BinaryWriter) error {
	numPages := len(t.Pages) / pageSize
	if err := bw.WriteUint32(uint32(len(t.Top))); err != nil {
		return err
	}
	if err := bw.WriteUint32(uint32(numPages)); err != nil {
		return err
	}
	if err := bw.WriteUint32(uint32(len(t.Rules))); err != nil {
		return err
	}
	if err := bw.WriteUint32Slice(t.Top); err != nil {
		return err
	}
	if err := bw.WriteUint32Slice(t.Pages); err != nil {
		return err
	}
	var blob []byte
	for _, r := range t.Rules {
		flags := uint32(0)
		if r.Invoke {
			flags |= 1
		}
		if r.Group {
			flags |= 2
		}
		if err := bw.WriteUint32(flags); err != nil {
			return err
		}
		if err := bw.WriteUint16(r.Length); err != nil {
			return err
		}
		if err := bw.WriteUint16(r.LeftID); err != nil {
			return err
		}
		if err := bw.WriteUint16(r.RightID); err != nil {
			return err
		}
		if err := bw.WriteUint16(uint16(r.WordCost)); err != nil {
			return err
		}
		if err := bw.WriteUint32(uint32(len(blob))); err != nil {
			return err
		}
		if err := bw.WriteUint32(uint32(len(r.Feature))); err != nil {
			return err
		}
		blob = append(blob, r.Feature...)
	}
	if err := bw.WriteRaw(blob); err != nil {
		return err
	}
	return bw.PadToAlignment(0, 4)
}

// Decode builds a zero-copy Table view over data written by WriteTo.
func Decode(data []byte) (*Table, error) {
	r := persistence.NewSliceReader(data)
	topLen, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("charclass: read TopLen: %w", err)
	}
	numPages, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("charclass: read NumPages: %w", err)
	}
	numRules, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("charclass: read NumRules: %w", err)
	}
	top, err := r.ReadUint32SliceView(int(topLen))
	if err != nil {
		return nil, fmt.Errorf("charclass: read Top: %w", err)
	}
	pages, err := r.ReadUint32SliceView(int(numPages) * pageSize)
	if err != nil {
		return nil, fmt.Errorf("charclass: read Pages: %w", err)
	}

	type rawRule struct {
		flags, blobOff, blobLen uint32
		length, leftID, rightID, wordCost uint16
	}
	raws := make([]rawRule, numRules)
	for i := range raws {
		flags, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		length, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		leftID, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		rightID, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		wordCost, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		blobOff, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		blobLen, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		raws[i] = rawRule{flags, blobOff, blobLen, length, leftID, rightID, wordCost}
	}
	blobStart := r.Offset()
	blob, err := r.ReadBytes(len(data) - blobStart)
	if err != nil {
		return nil, fmt.Errorf("charclass: read feature blob: %w", err)
	}

	rules := make([]Rule, numRules)
	for i, rr := range raws {
		rules[i] = Rule{
			Invoke:   rr.flags&1 != 0,
			Group:    rr.flags&2 != 0,
			Length:   rr.length,
			LeftID:   rr.leftID,
			RightID:  rr.rightID,
			WordCost: int16(rr.wordCost),
			Feature:  string(blob[rr.blobOff : rr.blobOff+rr.blobLen]),
		}
	}

	return &Table{Top: top, Pages: pages, Rules: rules}, nil
}
