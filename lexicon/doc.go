// Package lexicon implements the double-array trie lookup over raw
// UTF-8 bytes: common-prefix enumeration of dictionary entries, plus
// the per-word_id params and feature strings needed to turn a trie
// match into a lattice candidate.
//
// One concrete type, Lexicon, satisfies the View interface, whether
// built in memory by Builder.Freeze or decoded zero-copy from a
// persisted lexicon section by Decode via persistence.SliceReader. It
// is read-only once constructed; a Builder is the only mutable form.
package lexicon
