// Package blobstore abstracts read access to dictionary files by
// name, independent of how they're laid out on disk.
//
// BlobStore is the interface for opening a named blob (a dictionary
// file) for reading. LocalStore is the filesystem-backed
// implementation: it mmaps each blob it opens, since tokenization
// wants zero-copy random access into the archived root rather than a
// streamed read.
//
// Most callers don't need this package directly; tategaki.Load and
// tategaki.LoadZstd open a single dictionary path on their own. It
// exists for processes that manage a directory of several
// dictionaries (e.g. a system dictionary plus one or more user
// dictionaries) and want to enumerate or open them by name rather than
// hardcoding paths — see tategaki.OpenRepository.
package blobstore
