//go:build amd64 || arm64

// Package persistence implements tategaki's on-disk dictionary
// container: the load/verify/cache pipeline (magic-byte gating,
// legacy-format detection, metadata-hash cache, alignment fallback,
// structural validation) and the flat binary
// writer/reader pair (BinaryWriter / SliceReader) that the lexicon,
// connector and charclass packages use to persist and mmap their
// archived views without copying.
//
// PLATFORM REQUIREMENTS:
//   - Architecture: amd64 or arm64 only
//   - Endianness: little-endian (native on x86_64 and ARM64)
//   - Alignment: 2-byte for int16/uint16, 4-byte for int32/uint32
//
// The unsafe operations in this package are verified at runtime with
// alignment checks and platform validation. See safety.go.
package persistence
