// Package testutil provides testing utilities for lingmatch.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating deterministic random feature
// matrices, grouping vectors, and reference similarity values.
//
// # Random Matrix Generation
//
//	rng := testutil.NewRNG(seed)
//	m := rng.CountMatrix(rows, cols)     // small non-negative counts
//	vals := rng.UniformRow(cols)         // uniform [0, 1)
//
// # Reference Values
//
//	got := testutil.NaiveCosine(a, b)
package testutil
