package tategaki

import (
	"log/slog"

	"github.com/tategaki/tategaki/persistence"
	"github.com/tategaki/tategaki/resource"
)

type options struct {
	logger         *Logger
	loadMode       persistence.LoadMode
	globalCacheDir string
	resources      *resource.Controller
	ignoreSpace    bool
	maxGroupingLen uint16
}

// Option configures Load/LoadZstd/DictionaryCache.Get and the
// Tokenizer they produce.
type Option func(*options)

// WithLogger configures structured logging for load/validate/cache
// events. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets
// it. Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithTrustCache makes Load skip structural validation when a cache
// marker for the file's current metadata hash already exists (next to
// the file or under the global cache directory), recording a global
// one on first successful validation. A marker is recorded only when
// WithGlobalCacheDir is also set; there is no default global cache
// directory. The default is to always validate.
func WithTrustCache() Option {
	return func(o *options) {
		o.loadMode = persistence.TrustCache
	}
}

// WithGlobalCacheDir sets the system-wide cache directory consulted
// for cache markers (see WithTrustCache) and used as the destination
// directory for LoadZstd's decompress-once cache.
func WithGlobalCacheDir(dir string) Option {
	return func(o *options) {
		o.globalCacheDir = dir
	}
}

// WithResourceController attaches a resource.Controller used to rate
// limit the I/O side of LoadZstd's decompression.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithIgnoreSpace sets the default lattice.Options.IgnoreSpace every
// Worker created from this Tokenizer starts with.
func WithIgnoreSpace(v bool) Option {
	return func(o *options) {
		o.ignoreSpace = v
	}
}

// WithMaxGroupingLen sets the default lattice.Options.MaxGroupingLen
// every Worker created from this Tokenizer starts with: the maximum
// run length the unknown-word handler groups together under a
// grouping category.
func WithMaxGroupingLen(n uint16) Option {
	return func(o *options) {
		o.maxGroupingLen = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:         NoopLogger(),
		loadMode:       persistence.Validate,
		maxGroupingLen: 24,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
