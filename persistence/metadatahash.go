package persistence

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"os"
)

// MetadataHash computes the cache identity of a file: a hash over
// filesystem metadata (device, inode, size, mtime on POSIX; only size
// and mtime on other platforms) rather than file contents.
// This is deliberate — the cache answers "has a dictionary at this
// identity been structurally validated before", and that question
// must be cheap (one stat call) or the fast path is no faster than
// just re-validating.
func MetadataHash(fi os.FileInfo) string {
	h := sha256.New()
	writeMetadataFields(h, fi)
	return hex.EncodeToString(h.Sum(nil))
}

func putU64(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func writeMetadataFieldsFallback(h hash.Hash, fi os.FileInfo) {
	putU64(h, uint64(fi.Size()))
	mtime := fi.ModTime()
	putU64(h, uint64(mtime.UnixNano()))
}

// MetadataHashOfFile stats path and computes its MetadataHash.
func MetadataHashOfFile(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return MetadataHash(fi), nil
}
