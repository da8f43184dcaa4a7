// Package persistence implements tategaki's on-disk dictionary
// container: the load/verify/cache pipeline (§4.1) and the flat
// binary writer/reader pair used by the lexicon, connector and
// charclass packages to persist and mmap their archived views.
package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BinaryWriter writes dictionary sections in the flat little-endian
// format consumed by SliceReader.
type BinaryWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

// NewBinaryWriter wraps w for section-by-section writes. Callers must
// call Flush when done.
func NewBinaryWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{w: bufio.NewWriter(w)}
}

func (bw *BinaryWriter) fail(err error) {
	if bw.err == nil {
		bw.err = err
	}
}

// Err returns the first error encountered by any write.
func (bw *BinaryWriter) Err() error { return bw.err }

// WriteMagicAndPadding writes the MagicBytes + PaddingByte run that
// occupies [0, DataStart).
func (bw *BinaryWriter) WriteMagicAndPadding() error {
	if bw.err != nil {
		return bw.err
	}
	if err := bw.WriteRaw([]byte(MagicBytes)); err != nil {
		return err
	}
	pad := make([]byte, DataStart-MagicLen)
	for i := range pad {
		pad[i] = PaddingByte
	}
	return bw.WriteRaw(pad)
}

// WriteRootHeader writes the fixed-size section directory.
func (bw *BinaryWriter) WriteRootHeader(h *RootHeader) error {
	if err := bw.WriteUint32(h.Flags); err != nil {
		return err
	}
	for _, v := range []uint64{
		h.SysLexiconSize, h.UserLexiconSize, h.UnkLexiconSize,
		h.ConnectorSize, h.CharTableSize, h.IDMapperSize,
	} {
		if err := bw.WriteUint64(v); err != nil {
			return err
		}
	}
	return bw.err
}

// WriteUint16 writes a little-endian uint16.
func (bw *BinaryWriter) WriteUint16(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return bw.WriteRaw(b[:])
}

// WriteUint32 writes a little-endian uint32.
func (bw *BinaryWriter) WriteUint32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return bw.WriteRaw(b[:])
}

// WriteUint64 writes a little-endian uint64.
func (bw *BinaryWriter) WriteUint64(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return bw.WriteRaw(b[:])
}

// WriteInt16Slice writes a []int16 as raw little-endian bytes.
func (bw *BinaryWriter) WriteInt16Slice(vs []int16) error {
	buf := make([]byte, len(vs)*2)
	for i, v := range vs {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return bw.WriteRaw(buf)
}

// WriteInt32Slice writes a []int32 as raw little-endian bytes.
func (bw *BinaryWriter) WriteInt32Slice(vs []int32) error {
	buf := make([]byte, len(vs)*4)
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return bw.WriteRaw(buf)
}

// WriteUint16Slice writes a []uint16 as raw little-endian bytes.
func (bw *BinaryWriter) WriteUint16Slice(vs []uint16) error {
	buf := make([]byte, len(vs)*2)
	for i, v := range vs {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return bw.WriteRaw(buf)
}

// WriteUint32Slice writes a []uint32 as raw little-endian bytes.
func (bw *BinaryWriter) WriteUint32Slice(vs []uint32) error {
	buf := make([]byte, len(vs)*4)
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return bw.WriteRaw(buf)
}

// WriteRaw writes b verbatim, tracking the running offset.
func (bw *BinaryWriter) WriteRaw(b []byte) error {
	if bw.err != nil {
		return bw.err
	}
	n, err := bw.w.Write(b)
	bw.n += int64(n)
	if err != nil {
		bw.fail(err)
	}
	return err
}

// Offset returns the number of bytes written so far.
func (bw *BinaryWriter) Offset() int64 { return bw.n }

// Flush flushes the underlying buffered writer.
func (bw *BinaryWriter) Flush() error {
	if bw.err != nil {
		return bw.err
	}
	if err := bw.w.Flush(); err != nil {
		bw.fail(err)
		return err
	}
	return nil
}

// PadToAlignment writes zero bytes until Offset() is a multiple of
// align, relative to baseOffset (normally DataStart).
func (bw *BinaryWriter) PadToAlignment(baseOffset int64, align int64) error {
	if bw.err != nil {
		return bw.err
	}
	rel := bw.n - baseOffset
	if rel < 0 {
		return fmt.Errorf("persistence: offset %d precedes base %d", bw.n, baseOffset)
	}
	rem := rel % align
	if rem == 0 {
		return nil
	}
	return bw.WriteRaw(make([]byte, align-rem))
}

// SaveToFile atomically writes the output of writeFunc to filename via
// a temp file in the same directory, fsync'd and renamed into place.
// Used by dictionary writers such as testutil.WriteArchiveFile; the
// zstd loader's decompress step (DecompressToCache) has its own
// temp-file-and-rename path.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}

// LoadFromFile opens filename and hands a buffered reader to readFunc.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewReaderSize(f, 256*1024)
	return readFunc(buf)
}
