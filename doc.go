// Package tategaki provides a Japanese morphological analyzer: a
// Viterbi tokenizer over a zero-copy, mmap-backed dictionary, modeled
// on the Vibrato/rkyv dictionary format.
//
// # Quick Start
//
//	dict, err := tategaki.Load("ipadic.dict")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dict.Close()
//
//	tok := tategaki.New(dict, tategaki.WithIgnoreSpace(true))
//	w := tok.NewWorker()
//
//	w.SetText([]byte("東京都に住む"))
//	if err := w.Tokenize(); err != nil {
//	    log.Fatal(err)
//	}
//	for t := range w.Tokens() {
//	    fmt.Println(t.Surface, t.Feature)
//	}
//
// # Loading
//
// Load checks a dictionary's magic bytes, mmaps it, and validates its
// internal structure before decoding it. WithTrustCache skips re-validation on subsequent
// opens of a file whose metadata hash already has a cache marker from
// a prior successful validation:
//
//	dict, _ := tategaki.Load("ipadic.dict", tategaki.WithTrustCache())
//
// LoadZstd decompresses a compressed dictionary into a cache file on
// its first call and mmaps that cache file; later calls with the same
// source reuse it without decompressing again. LoadUnchecked
// skips validation entirely, for callers that already trust the file.
//
// # Workers and concurrency
//
// A Dictionary is safe to share across goroutines. Worker is not: each
// goroutine tokenizing concurrently should call Tokenizer.NewWorker for
// its own instance, since a Worker reuses its lattice buffer across
// calls. TokenizeBatch handles the common case of tokenizing many
// independent texts concurrently without that bookkeeping.
//
// # k-best search
//
// Worker.TokenizeKBest enumerates the k least-cost tokenizations of a
// text using A* search over the same lattice Tokenize builds, rather
// than only the single best path.
package tategaki
