package tategaki

import (
	"errors"
	"fmt"

	"github.com/tategaki/tategaki/persistence"
)

var (
	// ErrInvalidArgument is returned for malformed caller input: a
	// non-positive k to TokenizeKBest, an empty dictionary path, and
	// similar.
	ErrInvalidArgument = errors.New("tategaki: invalid argument")

	// ErrInvalidState is returned when a Worker method is called out of
	// sequence, e.g. Tokenize or TokenizeKBest before SetText.
	ErrInvalidState = errors.New("tategaki: invalid worker state")

	// ErrIO names the I/O failure kind (open, read, mmap, cache-marker
	// writes), distinct from the dictionary's own structural problems.
	// The loaders return the underlying os and mmap errors wrapped with
	// context rather than ErrIO, so errors.Is(err, ErrIO) does not match
	// them.
	ErrIO = errors.New("tategaki: i/o error")

	// ErrInvalidMagic, ErrLegacyFormat, ErrTooSmall and ErrValidationFailed
	// are re-exported from package persistence so callers checking
	// errors.Is on a Load failure don't need to import persistence
	// themselves.
	ErrInvalidMagic     = persistence.ErrInvalidMagic
	ErrLegacyFormat     = persistence.ErrLegacyFormat
	ErrTooSmall         = persistence.ErrTooSmall
	ErrValidationFailed = persistence.ErrValidationFailed
)

// ValidationError carries the byte offset and human-readable reason a
// structural validator rejected a section at, when that detail is
// available (persistence.ValidateRootHeader returns a plain error; the
// section decoders called from decodeRoot, which can localize the
// failure, are wrapped in a ValidationError instead).
type ValidationError struct {
	Offset int
	Reason string
	cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tategaki: validation failed at offset %d: %s", e.Offset, e.Reason)
}

func (e *ValidationError) Unwrap() error { return errors.Join(ErrValidationFailed, e.cause) }

// newValidationError wraps err as a ValidationError anchored at offset,
// for decoders in lexicon/connector/charclass that can identify where
// in a section the data went wrong.
func newValidationError(offset int, reason string, cause error) *ValidationError {
	return &ValidationError{Offset: offset, Reason: reason, cause: cause}
}
