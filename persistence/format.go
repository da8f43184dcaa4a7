package persistence

import "errors"

const (
	// MagicBytes identifies a current-format tategaki dictionary file.
	MagicBytes = "VibratoTokenizerRkyv 0.6\n"
	// MagicLen is len(MagicBytes); kept separate because the loader
	// must read exactly this many bytes before comparing them.
	MagicLen = 25
	// LegacyMagicPrefix identifies dictionaries built by the predecessor
	// bincode-based format. Files starting with this prefix are
	// rejected with a dedicated, actionable error instead of InvalidMagic.
	LegacyMagicPrefix = "VibratoTokenizerBincode"
	// PaddingByte fills the gap between the magic bytes and DataStart.
	PaddingByte = 0xFF
	// DataStart is the byte offset of the archived root. It must be a
	// multiple of 16; MagicLen+padding is chosen to land here exactly.
	DataStart = 32
	// RootAlignment is the mandatory alignment of the archived root.
	RootAlignment = 16
)

var (
	// ErrInvalidMagic is returned when the leading bytes of a file do
	// not match MagicBytes.
	ErrInvalidMagic = errors.New("tategaki: invalid magic bytes")
	// ErrLegacyFormat is returned when the file is a pre-rkyv bincode
	// dictionary; it must be rebuilt with a current compiler.
	ErrLegacyFormat = errors.New("tategaki: this file is the legacy bincode format; rebuild the dictionary")
	// ErrTooSmall is returned when the file is smaller than DataStart.
	ErrTooSmall = errors.New("tategaki: file too small to contain a dictionary header")
	// ErrValidationFailed is returned when structural validation of the
	// archived graph rejects the bytes.
	ErrValidationFailed = errors.New("tategaki: dictionary structural validation failed")
)

// ConnectorKind tags which connector variant a dictionary was built with.
type ConnectorKind uint8

const (
	ConnectorMatrix ConnectorKind = iota
	ConnectorDual
	ConnectorRaw
)

// rootFlags bit layout within RootHeader.Flags.
const (
	flagHasUserLexicon = 1 << 0
	flagHasIDMapper    = 1 << 1
	flagConnectorKind  = 0b11 << 2 // 2 bits
)

// RootHeader is the fixed-size section directory written immediately
// at DataStart. It carries the byte length of every top-level section
// so a loader can slice the mapped region into sections without
// parsing anything inside them first.
type RootHeader struct {
	Flags           uint32
	SysLexiconSize  uint64
	UserLexiconSize uint64
	UnkLexiconSize  uint64
	ConnectorSize   uint64
	CharTableSize   uint64
	IDMapperSize    uint64
}

// HeaderSize is the on-disk size of RootHeader.
const HeaderSize = 4 + 8*6

func (h *RootHeader) HasUserLexicon() bool { return h.Flags&flagHasUserLexicon != 0 }
func (h *RootHeader) HasIDMapper() bool    { return h.Flags&flagHasIDMapper != 0 }
func (h *RootHeader) GetConnectorKind() ConnectorKind {
	return ConnectorKind((h.Flags & flagConnectorKind) >> 2)
}

func (h *RootHeader) SetHasUserLexicon(v bool) {
	if v {
		h.Flags |= flagHasUserLexicon
	} else {
		h.Flags &^= flagHasUserLexicon
	}
}

func (h *RootHeader) SetHasIDMapper(v bool) {
	if v {
		h.Flags |= flagHasIDMapper
	} else {
		h.Flags &^= flagHasIDMapper
	}
}

func (h *RootHeader) SetConnectorKind(k ConnectorKind) {
	h.Flags &^= flagConnectorKind
	h.Flags |= (uint32(k) << 2) & flagConnectorKind
}
