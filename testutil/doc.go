// Package testutil provides testing helpers shared across tategaki's
// packages: a seeded RNG for generating mixed-script test input, and
// BuildSampleDictionary for assembling a small in-memory
// lattice.Dictionary without the archive encode/decode round trip a
// loaded one goes through.
//
// # Sample dictionaries
//
//	sample := testutil.BuildSampleDictionary(
//		[]testutil.SampleWord{{Surface: "東京", LeftID: 10, RightID: 10, WordCost: 100, Feature: "名詞,固有名詞,*,*,*,*,東京"}},
//		nil,
//	)
//	toks := lattice.Forward(lattice.New(), sample.Dict, []byte("東京"), lattice.Options{})
//
// # Random text
//
//	rng := testutil.NewRNG(42)
//	text := rng.RandomText(64)
package testutil
