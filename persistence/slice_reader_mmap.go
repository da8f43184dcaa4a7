package persistence

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// SliceReader provides bounds-checked, allocation-free reads from a
// byte slice. It backs every zero-copy accessor in lexicon, connector
// and charclass: typed slice views are reinterpreted directly over
// the mapped bytes rather than copied out.
type SliceReader struct {
	b   []byte
	off int
}

func NewSliceReader(b []byte) *SliceReader {
	return &SliceReader{b: b, off: 0}
}

func (r *SliceReader) Offset() int {
	if r == nil {
		return 0
	}
	return r.off
}

func (r *SliceReader) Len() int { return len(r.b) }

func (r *SliceReader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.b) {
		return nil, fmt.Errorf("sliceReader: out of bounds read (%d bytes at %d, len=%d)", n, r.off, len(r.b))
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *SliceReader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *SliceReader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *SliceReader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *SliceReader) ReadByte() (byte, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadRootHeader decodes the fixed-size RootHeader at the current
// offset.
func (r *SliceReader) ReadRootHeader() (*RootHeader, error) {
	var h RootHeader
	flags, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.Flags = flags
	for _, f := range []*uint64{
		&h.SysLexiconSize, &h.UserLexiconSize, &h.UnkLexiconSize,
		&h.ConnectorSize, &h.CharTableSize, &h.IDMapperSize,
	} {
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	return &h, nil
}

// ReadInt16SliceView returns a zero-copy []int16 view over the next
// n*2 bytes. The caller asserts the underlying buffer is 2-byte
// aligned at this offset (true for every section in this format
// since DataStart and every section length are even).
func (r *SliceReader) ReadInt16SliceView(n int) ([]int16, error) {
	if n == 0 {
		return nil, nil
	}
	bb, err := r.ReadBytes(n * 2)
	if err != nil {
		return nil, err
	}
	if err := validateAlignment(bb, 2); err != nil {
		return nil, err
	}
	return unsafe.Slice((*int16)(unsafe.Pointer(&bb[0])), n), nil
}

// ReadUint16SliceView returns a zero-copy []uint16 view.
func (r *SliceReader) ReadUint16SliceView(n int) ([]uint16, error) {
	if n == 0 {
		return nil, nil
	}
	bb, err := r.ReadBytes(n * 2)
	if err != nil {
		return nil, err
	}
	if err := validateAlignment(bb, 2); err != nil {
		return nil, err
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&bb[0])), n), nil
}

// ReadInt32SliceView returns a zero-copy []int32 view.
func (r *SliceReader) ReadInt32SliceView(n int) ([]int32, error) {
	if n == 0 {
		return nil, nil
	}
	bb, err := r.ReadBytes(n * 4)
	if err != nil {
		return nil, err
	}
	if err := validateAlignment(bb, 4); err != nil {
		return nil, err
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&bb[0])), n), nil
}

// ReadUint32SliceView returns a zero-copy []uint32 view.
func (r *SliceReader) ReadUint32SliceView(n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	bb, err := r.ReadBytes(n * 4)
	if err != nil {
		return nil, err
	}
	if err := validateAlignment(bb, 4); err != nil {
		return nil, err
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&bb[0])), n), nil
}

// ReadUint32SliceCopy copies n uint32s out of the reader. Used where
// the caller must own the memory independent of the mapping lifetime
// (e.g. building an owned Dictionary from a freshly-built trie).
func (r *SliceReader) ReadUint32SliceCopy(n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	bb, err := r.ReadBytes(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), n*4), bb)
	return out, nil
}
