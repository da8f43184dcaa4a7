// Package charclass implements the character-property table and
// unknown-word emission algorithm: a closed, finite set of categories
// per code point, and the rules (invoke/group/length) that turn
// lexicon silence into synthetic lattice candidates.
package charclass
