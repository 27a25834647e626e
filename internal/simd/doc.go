// Package simd provides word-level kernels for the rank/select bitmap.
//
// # Supported Platforms
//
//   - x86-64: hardware POPCNT
//   - ARM64: NEON (ASIMD) CNT
//
// Runtime CPU feature detection selects the kernel set at init. Set
// ROWMAP_SIMD=generic to force the scalar fallback.
//
// # Operations
//
//   - PopcountWords: total set bits across a word slice
//   - AndWords: dst &= src
//   - AndNotWords: dst &^= src
package simd
