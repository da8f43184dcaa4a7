package tategaki

import (
	"iter"

	"github.com/tategaki/tategaki/core"
	"github.com/tategaki/tategaki/lattice"
)

// Tokenizer binds a Dictionary to the Worker default options it hands
// out. A Tokenizer is safe for concurrent use; each goroutine should
// still get its own Worker, since Worker holds the per-call lattice
// buffer Forward/KBest reuse across calls.
type Tokenizer struct {
	dict *Dictionary
	opts lattice.Options
}

// New builds a Tokenizer over dict, applying any Option that
// configures per-Worker defaults (WithIgnoreSpace, WithMaxGroupingLen).
func New(dict *Dictionary, optFns ...Option) *Tokenizer {
	o := applyOptions(optFns)
	return &Tokenizer{
		dict: dict,
		opts: lattice.Options{
			IgnoreSpace:    o.ignoreSpace,
			MaxGroupingLen: o.maxGroupingLen,
		},
	}
}

// NewWorker returns a Worker ready to tokenize text against t's
// dictionary, with its own reusable lattice buffer.
func (t *Tokenizer) NewWorker() *Worker {
	return &Worker{
		dict: t.dict,
		opts: t.opts,
		lat:  lattice.New(),
	}
}

// Worker holds the mutable, single-goroutine state of one tokenization
// pass: the input text and the lattice buffer Forward/KBest reuse
// across calls. A Worker must not be shared across goroutines; get one
// per goroutine from Tokenizer.NewWorker.
type Worker struct {
	dict *Dictionary
	opts lattice.Options
	lat  *lattice.Lattice

	text   []byte
	tokens []lattice.Token
	best   bool
}

// SetText resets the worker and stages text for the next Tokenize (or
// TokenizeKBest) call. text is retained, not copied; the caller must
// not mutate it until the worker is done with it.
func (w *Worker) SetText(text []byte) {
	w.text = text
	w.tokens = nil
	w.best = false
}

// Tokenize runs the Viterbi search over the text staged by SetText and
// retains the single best path. Returns ErrInvalidState if SetText
// hasn't been called.
func (w *Worker) Tokenize() error {
	if w.text == nil {
		return ErrInvalidState
	}
	w.tokens = lattice.Forward(w.lat, &w.dict.dict, w.text, w.opts)
	w.best = true
	return nil
}

// TokenizeKBest runs the Viterbi search then an A* backward expansion
// to enumerate up to k least-cost tokenizations, returning them
// cheapest first. Unlike Tokenize, it does not set the Worker's
// current Tokens(); callers consume the result directly.
func (w *Worker) TokenizeKBest(k int) ([][]Token, error) {
	if w.text == nil {
		return nil, ErrInvalidState
	}
	if k <= 0 {
		return nil, ErrInvalidArgument
	}

	l := w.lat
	_ = lattice.Forward(l, &w.dict.dict, w.text, w.opts)

	eosOffset := len(w.text)
	nodes := l.NodesAt(eosOffset)
	eosIdx := len(nodes) - 1
	if eosIdx < 0 {
		return nil, nil
	}

	raw := lattice.KBest(l, &w.dict.dict, w.text, eosOffset, eosIdx, k)
	out := make([][]Token, len(raw))
	for i, toks := range raw {
		out[i] = convertTokens(w.text, toks)
	}
	return out, nil
}

// Token is one emitted morpheme: its UTF-8 surface text, its feature
// string (a dictionary-defined, comma-joined POS/reading/etc. blob),
// and the (namespace, word_id) identity backing it.
type Token struct {
	Surface string
	Feature string
	Word    core.WordIdx
}

func convertTokens(text []byte, toks []lattice.Token) []Token {
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token{
			Surface: string(text[t.Begin:t.End]),
			Feature: t.Feature,
			Word:    t.Word,
		}
	}
	return out
}

// Tokens returns an iterator over the tokens from the most recent
// Tokenize call, in surface order. Yields nothing if Tokenize hasn't
// run successfully; callers that need an
// explicit error should check Tokenize's return value instead.
func (w *Worker) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		if !w.best {
			return
		}
		for _, t := range w.tokens {
			if !yield((Token{
				Surface: string(w.text[t.Begin:t.End]),
				Feature: t.Feature,
				Word:    t.Word,
			})) {
				return
			}
		}
	}
}

// Stats returns observability counters accumulated by the most recent
// Tokenize/TokenizeKBest call: currently, which byte offsets required
// the must-make-progress unknown-word fallback.
func (w *Worker) Stats() lattice.Stats {
	return w.lat.Stats()
}
