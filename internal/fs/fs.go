package fs

import (
	"io"
	"os"
)

// File is the subset of an open file the atomic cache-write path
// needs: write the payload, fsync it, close it.
type File interface {
	io.WriteCloser
	Sync() error
}

// FileSystem abstracts the file operations persistence.DecompressToCache
// performs when it publishes a decompressed dictionary into the
// global cache: create a temp file, write to it, and atomically
// publish it under its final name. Narrowed to that path rather than a
// general-purpose filesystem interface, so fs.FaultyFS only has to
// fault-inject the calls that path actually makes.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	MkdirAll(path string, perm os.FileMode) error
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

func (LocalFS) Remove(name string) error             { return os.Remove(name) }
func (LocalFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Default is the default local file system.
var Default FileSystem = LocalFS{}
