package tategaki

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DictionaryCache keeps one open Dictionary per path, so a long-running
// process that repeatedly opens the same dictionary (e.g. once per
// incoming request) doesn't re-mmap and re-validate it every time.
// Concurrent first-opens of the same path are coalesced with
// singleflight so only one goroutine pays the Load cost; the rest
// observe the same *Dictionary.
//
// Entries are not reference-counted: a *Dictionary handed out by Get
// is shared and must not be Closed by the caller. DictionaryCache.Close
// closes every entry currently cached; call it only once nothing is
// still tokenizing against them.
type DictionaryCache struct {
	ttl   time.Duration
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*cachedDict
}

type cachedDict struct {
	dict     *Dictionary
	loadedAt time.Time
}

// NewDictionaryCache returns a DictionaryCache whose entries are
// considered fresh for ttl after loading. ttl <= 0 means entries never
// expire: once loaded, a path's Dictionary is reused for the cache's
// entire lifetime.
func NewDictionaryCache(ttl time.Duration) *DictionaryCache {
	return &DictionaryCache{ttl: ttl, entries: make(map[string]*cachedDict)}
}

// Get returns the cached Dictionary for path, loading it (via Load
// with optFns) if absent or if its entry has outlived ttl. The
// superseded entry, if any, is left for the caller to reason about
// separately: DictionaryCache never closes a handle it has already
// handed out, since some other goroutine may still be mid-tokenize
// against it.
func (c *DictionaryCache) Get(path string, optFns ...Option) (*Dictionary, error) {
	if d := c.fresh(path); d != nil {
		return d, nil
	}

	v, err, _ := c.group.Do(path, func() (any, error) {
		if d := c.fresh(path); d != nil {
			return d, nil
		}
		d, err := Load(path, optFns...)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[path] = &cachedDict{dict: d, loadedAt: time.Now()}
		c.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dictionary), nil
}

func (c *DictionaryCache) fresh(path string) *Dictionary {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok {
		return nil
	}
	if c.ttl > 0 && time.Since(e.loadedAt) >= c.ttl {
		return nil
	}
	return e.dict
}

// Len reports the number of distinct paths currently cached.
func (c *DictionaryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close closes every Dictionary currently cached and empties the
// cache. Callers must ensure no goroutine is still using a cached
// handle before calling this.
func (c *DictionaryCache) Close() error {
	c.mu.Lock()
	entries := c.entries
	c.entries = make(map[string]*cachedDict)
	c.mu.Unlock()

	var firstErr error
	for _, e := range entries {
		if err := e.dict.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
