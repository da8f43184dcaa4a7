package persistence

import "fmt"

// ValidateRootHeader decodes the RootHeader at the front of data and
// confirms its declared section sizes are internally consistent: every
// size is a multiple of 4 bytes (our narrowest section element after
// the header itself) and the sum of sections plus HeaderSize does not
// exceed len(data). It does not look inside any section — that is the
// domain Validator's job — only that a decoder walking the sections in
// order can never read past the end of the mapped region.
//
// Returns the decoded header and the offset of the first section so
// callers don't re-derive either.
func ValidateRootHeader(data []byte) (*RootHeader, int, error) {
	if len(data) < HeaderSize {
		return nil, 0, fmt.Errorf("%w: root shorter than header (%d bytes)", ErrValidationFailed, len(data))
	}
	r := NewSliceReader(data)
	h, err := r.ReadRootHeader()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	sizes := []struct {
		name string
		v    uint64
	}{
		{"sys lexicon", h.SysLexiconSize},
		{"user lexicon", h.UserLexiconSize},
		{"unknown lexicon", h.UnkLexiconSize},
		{"connector", h.ConnectorSize},
		{"char table", h.CharTableSize},
		{"id mapper", h.IDMapperSize},
	}

	var total uint64 = HeaderSize
	for _, s := range sizes {
		if s.v%4 != 0 {
			return nil, 0, fmt.Errorf("%w: %s section size %d is not 4-byte aligned", ErrValidationFailed, s.name, s.v)
		}
		total += s.v
	}
	if total > uint64(len(data)) {
		return nil, 0, fmt.Errorf("%w: declared sections total %d bytes, root only has %d", ErrValidationFailed, total, len(data))
	}
	if !h.HasUserLexicon() && h.UserLexiconSize != 0 {
		return nil, 0, fmt.Errorf("%w: user lexicon size set without the HasUserLexicon flag", ErrValidationFailed)
	}
	if !h.HasIDMapper() && h.IDMapperSize != 0 {
		return nil, 0, fmt.Errorf("%w: id mapper size set without the HasIDMapper flag", ErrValidationFailed)
	}
	return h, HeaderSize, nil
}

// Sections slices data (already past DataStart) into the six
// top-level byte ranges a RootHeader describes, in file order:
// sys lexicon, user lexicon, unknown lexicon, connector, char table,
// id mapper. A zero-size section yields a nil slice.
func Sections(data []byte, h *RootHeader) (sys, user, unk, conn, chars, idmap []byte) {
	off := HeaderSize
	next := func(size uint64) []byte {
		if size == 0 {
			return nil
		}
		s := data[off : off+int(size)]
		off += int(size)
		return s
	}
	sys = next(h.SysLexiconSize)
	user = next(h.UserLexiconSize)
	unk = next(h.UnkLexiconSize)
	conn = next(h.ConnectorSize)
	chars = next(h.CharTableSize)
	idmap = next(h.IDMapperSize)
	return
}
