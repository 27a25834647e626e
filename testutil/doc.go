// Package testutil provides deterministic input generators for RowMap tests.
//
// This package is intended for use in tests and benchmarks only. It returns
// plain slices and bounds rather than RowMaps so that the rowmap package's
// own tests can use it without an import cycle.
//
//	rng := testutil.NewRNG(seed)
//	mask := rng.Mask(1000, 0.3)        // []bool for FromBitmap
//	rows := rng.Rows(64, 500)          // arbitrary order, duplicates allowed
//	start, end := rng.Range(1000, 100) // bounds for FromRange
package testutil
