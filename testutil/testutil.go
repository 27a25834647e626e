package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint32n returns a pseudo-random number in [0,n). n must be positive.
func (r *RNG) Uint32n(n uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint32(r.rand.Int63n(int64(n)))
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Mask returns a universe-long mask where each entry is true with the given
// probability.
func (r *RNG) Mask(universe int, density float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	mask := make([]bool, universe)
	for i := range mask {
		mask[i] = r.rand.Float64() < density
	}
	return mask
}

// Rows returns n rows drawn uniformly from [0, universe), in arbitrary
// order and with duplicates.
func (r *RNG) Rows(n int, universe uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]uint32, n)
	for i := range rows {
		rows[i] = uint32(r.rand.Int63n(int64(universe)))
	}
	return rows
}

// DistinctRows returns n distinct rows from [0, universe) in random order.
// n must not exceed universe.
func (r *RNG) DistinctRows(n int, universe uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	perm := r.rand.Perm(int(universe))
	rows := make([]uint32, n)
	for i := range rows {
		rows[i] = uint32(perm[i])
	}
	return rows
}

// Positions returns n positions in [0, size), suitable as picker rows over
// a base of the given size. Duplicates and arbitrary order are included.
func (r *RNG) Positions(n int, size uint32) []uint32 {
	if size == 0 {
		return []uint32{}
	}
	return r.Rows(n, size)
}

// Range returns bounds [start, end) with start < maxStart and
// end-start <= maxLen.
func (r *RNG) Range(maxStart, maxLen uint32) (uint32, uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start := uint32(r.rand.Int63n(int64(maxStart)))
	length := uint32(r.rand.Int63n(int64(maxLen) + 1))
	return start, start + length
}
