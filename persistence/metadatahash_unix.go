//go:build unix

package persistence

import (
	"hash"
	"os"
	"syscall"
)

func writeMetadataFields(h hash.Hash, fi os.FileInfo) {
	if sys, ok := fi.Sys().(*syscall.Stat_t); ok {
		putU64(h, uint64(sys.Dev))
		putU64(h, uint64(sys.Ino))
		putU64(h, uint64(fi.Size()))
		mtime := fi.ModTime()
		putU64(h, uint64(mtime.Unix()))
		putU64(h, uint64(mtime.Nanosecond()))
		return
	}
	writeMetadataFieldsFallback(h, fi)
}
