// Package testutil provides testing utilities for graphblas.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for dense values,
// sparse (index, value) pairs and nonzero patterns.
//
// # Random Operands
//
//	rng := testutil.NewRNG(seed)
//	dense := rng.Dense(128)                   // uniform [1, 2)
//	ind, val := rng.Sparse(128, 0.1)          // ~10% density, ascending indices
//	pattern := rng.Pattern(128, 0.25)         // *roaring.Bitmap
//
// # Reference Results
//
//	want := testutil.DenseMult(u, v, mul)
//	ind, val := testutil.SparseDenseMult(uInd, uVal, v, mul)
package testutil
