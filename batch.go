package tategaki

import (
	"context"
	"sync"

	"github.com/tategaki/tategaki/internal/pool"
	"github.com/tategaki/tategaki/lattice"
	"github.com/tategaki/tategaki/resource"
)

// TokenizeBatch tokenizes every entry of texts concurrently, returning
// results in the same order as the input regardless of completion
// order. Each goroutine draws a lattice buffer from the shared pool
// package rather than allocating its own, so batches much larger than
// GOMAXPROCS don't pay for len(texts) separate buffers.
//
// When rc is non-nil, the number of texts processed at once is bounded
// by rc's configured MaxConcurrentWorkers rather than len(texts), and
// the total bytes of text staged for concurrent tokenization is bounded
// by MaxInFlightTextBytes; pass nil to run with one goroutine per text
// and no byte budget.
func (t *Tokenizer) TokenizeBatch(ctx context.Context, texts [][]byte, rc *resource.Controller) ([][]Token, error) {
	results := make([][]Token, len(texts))
	errs := make([]error, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		if rc != nil {
			if err := rc.AcquireWorker(ctx); err != nil {
				errs[i] = err
				continue
			}
			if err := rc.AcquireTextBytes(ctx, int64(len(text))); err != nil {
				rc.ReleaseWorker()
				errs[i] = err
				continue
			}
		}
		wg.Add(1)
		go func(i int, text []byte) {
			defer wg.Done()
			if rc != nil {
				defer rc.ReleaseWorker()
				defer rc.ReleaseTextBytes(int64(len(text)))
			}

			l := pool.Get()
			defer pool.Put(l)

			toks := lattice.Forward(l, &t.dict.dict, text, t.opts)
			results[i] = convertTokens(text, toks)
		}(i, text)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
