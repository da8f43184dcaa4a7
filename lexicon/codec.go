package lexicon

import (
	"fmt"

	"github.com/tategaki/tategaki/core"
	"github.com/tategaki/tategaki/persistence"
)

// WriteTo serializes l in the flat layout Decode expects: header,
// Base, Check, TermOffset, TermCount, TermWordIDs, WordLeft, WordRight,
// WordCost (padded to 4 bytes), FeatureOffset, FeatureBlob (padded to
// 4 bytes).
func (l *Lexicon) WriteTo(bw *persistence.BinaryWriter) error {
	if err := bw.WriteUint32(uint32(l.da.NumStates())); err != nil {
		return err
	}
	if err := bw.WriteUint32(uint32(l.NumWords())); err != nil {
		return err
	}
	if err := bw.WriteUint32(uint32(len(l.TermWordIDs))); err != nil {
		return err
	}
	if err := bw.WriteUint32(uint32(len(l.FeatureBlob))); err != nil {
		return err
	}
	if err := bw.WriteInt32Slice(l.da.Base); err != nil {
		return err
	}
	if err := bw.WriteInt32Slice(l.da.Check); err != nil {
		return err
	}
	if err := bw.WriteInt32Slice(l.TermOffset); err != nil {
		return err
	}
	if err := bw.WriteInt32Slice(l.TermCount); err != nil {
		return err
	}
	if err := bw.WriteUint32Slice(l.TermWordIDs); err != nil {
		return err
	}
	if err := bw.WriteUint16Slice(l.WordLeft); err != nil {
		return err
	}
	if err := bw.WriteUint16Slice(l.WordRight); err != nil {
		return err
	}
	if err := bw.WriteInt16Slice(l.WordCost); err != nil {
		return err
	}
	if err := bw.PadToAlignment(0, 4); err != nil {
		return err
	}
	if err := bw.WriteUint32Slice(l.FeatureOffset); err != nil {
		return err
	}
	if err := bw.WriteRaw(l.FeatureBlob); err != nil {
		return err
	}
	return bw.PadToAlignment(0, 4)
}

// Decode builds a zero-copy Lexicon view over data, which must begin
// with a section written by WriteTo. It never allocates beyond the
// returned struct itself: every slice field is a reinterpreted view
// into data via persistence.SliceReader.
func Decode(data []byte, lexType core.LexType) (*Lexicon, error) {
	r := persistence.NewSliceReader(data)
	numStates, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("lexicon: read NumStates: %w", err)
	}
	numWords, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("lexicon: read NumWords: %w", err)
	}
	numTermIDs, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("lexicon: read NumTermWordIDs: %w", err)
	}
	blobLen, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("lexicon: read FeatureBlobLen: %w", err)
	}

	base, err := r.ReadInt32SliceView(int(numStates))
	if err != nil {
		return nil, fmt.Errorf("lexicon: read Base: %w", err)
	}
	check, err := r.ReadInt32SliceView(int(numStates))
	if err != nil {
		return nil, fmt.Errorf("lexicon: read Check: %w", err)
	}
	termOffset, err := r.ReadInt32SliceView(int(numStates))
	if err != nil {
		return nil, fmt.Errorf("lexicon: read TermOffset: %w", err)
	}
	termCount, err := r.ReadInt32SliceView(int(numStates))
	if err != nil {
		return nil, fmt.Errorf("lexicon: read TermCount: %w", err)
	}
	termWordIDs, err := r.ReadUint32SliceView(int(numTermIDs))
	if err != nil {
		return nil, fmt.Errorf("lexicon: read TermWordIDs: %w", err)
	}
	wordLeft, err := r.ReadUint16SliceView(int(numWords))
	if err != nil {
		return nil, fmt.Errorf("lexicon: read WordLeft: %w", err)
	}
	wordRight, err := r.ReadUint16SliceView(int(numWords))
	if err != nil {
		return nil, fmt.Errorf("lexicon: read WordRight: %w", err)
	}
	wordCost, err := r.ReadInt16SliceView(int(numWords))
	if err != nil {
		return nil, fmt.Errorf("lexicon: read WordCost: %w", err)
	}
	if rem := r.Offset() % 4; rem != 0 {
		if _, err := r.ReadBytes(4 - rem); err != nil {
			return nil, fmt.Errorf("lexicon: skip padding: %w", err)
		}
	}
	featureOffset, err := r.ReadUint32SliceView(int(numWords) + 1)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read FeatureOffset: %w", err)
	}
	featureBlob, err := r.ReadBytes(int(blobLen))
	if err != nil {
		return nil, fmt.Errorf("lexicon: read FeatureBlob: %w", err)
	}

	return &Lexicon{
		lexType:       lexType,
		da:            DoubleArray{Base: base, Check: check},
		TermOffset:    termOffset,
		TermCount:     termCount,
		TermWordIDs:   termWordIDs,
		WordLeft:      wordLeft,
		WordRight:     wordRight,
		WordCost:      wordCost,
		FeatureOffset: featureOffset,
		FeatureBlob:   featureBlob,
	}, nil
}

// EncodedSize returns the exact byte length WriteTo will produce,
// used by a dictionary writer to fill in RootHeader section sizes
// before the sections themselves are written.
func (l *Lexicon) EncodedSize() int {
	n := 16 // sectionHeader
	n += len(l.da.Base) * 4
	n += len(l.da.Check) * 4
	n += len(l.TermOffset) * 4
	n += len(l.TermCount) * 4
	n += len(l.TermWordIDs) * 4
	n += len(l.WordLeft) * 2
	n += len(l.WordRight) * 2
	n += len(l.WordCost) * 2
	if rem := n % 4; rem != 0 {
		n += 4 - rem
	}
	n += (len(l.WordLeft) + 1) * 4
	n += len(l.FeatureBlob)
	if rem := n % 4; rem != 0 {
		n += 4 - rem
	}
	return n
}
