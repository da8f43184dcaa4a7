//go:build windows

package persistence

import (
	"hash"
	"os"
)

func writeMetadataFields(h hash.Hash, fi os.FileInfo) {
	// os.FileInfo on Windows does not expose a stable volume id without
	// reopening the file for a BY_HANDLE_FILE_INFORMATION query; size
	// and mtime are the portable fallback identity for non-POSIX
	// platforms.
	writeMetadataFieldsFallback(h, fi)
}
