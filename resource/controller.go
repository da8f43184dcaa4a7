package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds the resource budgets a Controller enforces.
type Config struct {
	// MaxInFlightTextBytes bounds how many bytes of input text may be
	// staged for concurrent tokenization at once (e.g. by
	// Tokenizer.TokenizeBatch). If 0, no hard limit is enforced (only
	// tracking).
	MaxInFlightTextBytes int64

	// MaxConcurrentWorkers is the maximum number of tokenization
	// goroutines a batch call may run at once. If 0, defaults to 1.
	MaxConcurrentWorkers int64

	// DecompressBytesPerSec caps the read rate of a dictionary
	// decompression stream. If 0, unlimited.
	DecompressBytesPerSec int64
}

// Controller enforces a caller-supplied Config's budgets across
// concurrent dictionary loads and tokenization batches. The text-byte
// methods (AcquireTextBytes, TryAcquireTextBytes, ReleaseTextBytes)
// accept a nil *Controller and then behave as if no budget were
// configured; TextBytesInFlight, the worker-slot methods and
// AcquireDecompressBytes require a non-nil receiver.
type Controller struct {
	cfg Config

	// In-flight input text
	textBytesSem   *semaphore.Weighted // nil if unlimited
	textBytesInUse atomic.Int64

	// Concurrent tokenization workers
	workerSem *semaphore.Weighted

	// Decompression read rate
	decompressLimiter *rate.Limiter
}

// NewController creates a Controller enforcing cfg's budgets.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentWorkers <= 0 {
		cfg.MaxConcurrentWorkers = 1
	}

	c := &Controller{
		cfg:       cfg,
		workerSem: semaphore.NewWeighted(cfg.MaxConcurrentWorkers),
	}

	if cfg.MaxInFlightTextBytes > 0 {
		c.textBytesSem = semaphore.NewWeighted(cfg.MaxInFlightTextBytes)
	}

	if cfg.DecompressBytesPerSec > 0 {
		c.decompressLimiter = rate.NewLimiter(rate.Limit(cfg.DecompressBytesPerSec), int(cfg.DecompressBytesPerSec))
	}

	return c
}

// AcquireTextBytes reserves n bytes of input text against the
// in-flight budget. If a hard limit is configured and reserving n
// would exceed it, this blocks until enough is released or ctx is
// canceled.
func (c *Controller) AcquireTextBytes(ctx context.Context, n int64) error {
	if c == nil {
		return nil
	}
	if n <= 0 {
		return nil
	}

	if c.textBytesSem != nil {
		if err := c.textBytesSem.Acquire(ctx, n); err != nil {
			return err
		}
	}

	c.textBytesInUse.Add(n)
	return nil
}

// TryAcquireTextBytes reserves n bytes of input text without blocking.
// Returns true if reserved, false if the in-flight budget would be
// exceeded.
func (c *Controller) TryAcquireTextBytes(n int64) bool {
	if c == nil {
		return true
	}
	if n <= 0 {
		return true
	}

	if c.textBytesSem != nil {
		if !c.textBytesSem.TryAcquire(n) {
			return false
		}
	}

	c.textBytesInUse.Add(n)
	return true
}

// ReleaseTextBytes releases n bytes previously reserved by
// AcquireTextBytes/TryAcquireTextBytes.
func (c *Controller) ReleaseTextBytes(n int64) {
	if c == nil {
		return
	}
	if n <= 0 {
		return
	}

	if c.textBytesSem != nil {
		c.textBytesSem.Release(n)
	}
	c.textBytesInUse.Add(-n)
}

// TextBytesInFlight returns the number of input-text bytes currently
// reserved.
func (c *Controller) TextBytesInFlight() int64 {
	return c.textBytesInUse.Load()
}

// AcquireWorker reserves a tokenization worker slot, blocking if all
// slots are busy.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	return c.workerSem.Acquire(ctx, 1)
}

// ReleaseWorker releases a tokenization worker slot.
func (c *Controller) ReleaseWorker() {
	c.workerSem.Release(1)
}

// TryAcquireWorker reserves a tokenization worker slot without
// blocking.
func (c *Controller) TryAcquireWorker() bool {
	return c.workerSem.TryAcquire(1)
}

// AcquireDecompressBytes waits until the decompression rate limit
// allows n more bytes to be read.
func (c *Controller) AcquireDecompressBytes(ctx context.Context, n int) error {
	if c.decompressLimiter == nil {
		return nil
	}
	return c.decompressLimiter.WaitN(ctx, n)
}
