package lexicon

// DoubleArray is the two-parallel-array trie representation: transition
// from state s on byte c lands at base[s]+c, valid iff check[next] == s.
// State 0 is reserved to mean "no state"; the root is always state 1.
// Adapted from the byte/rune-keyed double-array backend in the
// double-array reference implementation, narrowed to a fixed 256-symbol
// byte alphabet (raw UTF-8, not a dense rune remapping) since matching
// proceeds one byte at a time, never a decoded rune.
type DoubleArray struct {
	Base  []int32
	Check []int32
}

// Root is the trie's start state.
const Root int32 = 1

// Transition steps from state s on byte c. ok is false if the
// destination is out of range or its check cell doesn't point back at s.
func (d *DoubleArray) Transition(s int32, c byte) (int32, bool) {
	if s <= 0 || int(s) >= len(d.Base) {
		return 0, false
	}
	next := d.Base[s] + int32(c)
	if next <= 0 || int(next) >= len(d.Check) {
		return 0, false
	}
	if d.Check[next] != s {
		return 0, false
	}
	return next, true
}

// NumStates reports the number of allocated slots (including the
// unused index 0).
func (d *DoubleArray) NumStates() int { return len(d.Base) }
