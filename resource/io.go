package resource

import (
	"context"
	"io"
)

// RateLimitedReader wraps an io.Reader, acquiring rc's I/O budget for
// the caller's requested buffer size before each Read. Used by the
// zstd cache-warming path so decompressing a large dictionary doesn't
// starve the rest of a process's I/O budget.
type RateLimitedReader struct {
	r   io.Reader
	rc  *Controller
	ctx context.Context
}

// NewRateLimitedReader creates a new RateLimitedReader.
func NewRateLimitedReader(r io.Reader, rc *Controller, ctx context.Context) *RateLimitedReader {
	return &RateLimitedReader{
		r:   r,
		rc:  rc,
		ctx: ctx,
	}
}

// Read acquires budget for len(p) before delegating, since the actual
// read size isn't known until after it completes.
func (r *RateLimitedReader) Read(p []byte) (n int, err error) {
	if err := r.rc.AcquireDecompressBytes(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
