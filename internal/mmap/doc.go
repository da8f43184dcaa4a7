// Package mmap provides memory-mapped file access for zero-copy I/O.
//
// # Overview
//
// Memory mapping allows direct access to file contents without copying data
// through kernel buffers. Dictionary archives are opened once and read from
// for the lifetime of a process, so mapping them avoids paying a full read
// (and a second copy) just to boot a Dictionary.
//
// # Usage
//
//	m, err := mmap.Open("system.dict")
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy access to the whole archive
//	data := m.Bytes()
//
//	// Trie and connector lookups jump around rather than stream,
//	// so advise the kernel accordingly
//	m.Advise(mmap.AccessRandom)
//
// # Platform Support
//
// The package provides a unified API across platforms:
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with madvise(2) for access hints
//   - Windows: Uses CreateFileMapping/MapViewOfFile (madvise is a no-op)
//
// # Thread Safety
//
// Archive is safe for concurrent read access. The Close() method
// is idempotent and protected by atomic operations. However, callers must
// ensure no goroutines access Bytes() after Close() returns.
package mmap
