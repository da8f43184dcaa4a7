// Package pool provides a sync.Pool of reusable lattice buffers so
// concurrent tokenization (Tokenizer.TokenizeBatch) doesn't allocate a
// fresh node-slice backing array per text.
package pool

import (
	"sync"

	"github.com/tategaki/tategaki/lattice"
)

// latticePool is the global pool of *lattice.Lattice buffers.
var latticePool = sync.Pool{
	New: func() any { return lattice.New() },
}

// Get retrieves a *lattice.Lattice from the pool, ready for its next
// Forward/KBest call (its buffers may hold stale capacity from a prior
// use, but Forward's Reset call clears the visible contents).
func Get() *lattice.Lattice {
	return latticePool.Get().(*lattice.Lattice)
}

// Put returns l to the pool for reuse by a future Get.
func Put(l *lattice.Lattice) {
	latticePool.Put(l)
}
