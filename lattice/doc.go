// Package lattice builds the Viterbi lattice over an input buffer and
// runs shortest-path search over it: forward construction with
// single-best backward trace, and an optional k-best A* enumerator
// that reuses the forward pass's minimum-cost values as an admissible
// heuristic. A Lattice is a per-worker reused buffer, never shared
// across goroutines; the Dictionary it searches is shared read-only.
package lattice
