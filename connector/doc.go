// Package connector implements the three connection-cost
// representations: Matrix (dense), Dual (cache-locality split) and Raw
// (palette-compacted). All three satisfy View, so the lattice package
// is indifferent to which variant a dictionary was built with.
package connector
