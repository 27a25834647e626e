package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	rng := NewRNG(4711)

	assert.Len(t, rng.Mask(100, 0.5), 100)

	for _, v := range rng.Mask(50, 0) {
		assert.False(t, v)
	}
	for _, v := range rng.Mask(50, 1) {
		assert.True(t, v)
	}
}

func TestRows(t *testing.T) {
	rng := NewRNG(4711)

	rows := rng.Rows(200, 10)
	assert.Len(t, rows, 200)
	for _, r := range rows {
		assert.Less(t, r, uint32(10))
	}

	distinct := rng.DistinctRows(10, 10)
	assert.ElementsMatch(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, distinct)

	assert.Empty(t, rng.Positions(5, 0))
}

func TestRange(t *testing.T) {
	rng := NewRNG(4711)
	for range 100 {
		start, end := rng.Range(1000, 50)
		assert.Less(t, start, uint32(1000))
		assert.LessOrEqual(t, start, end)
		assert.LessOrEqual(t, end-start, uint32(50))
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(99)
	first := rng.Rows(8, 1000)
	rng.Reset()
	assert.Equal(t, first, rng.Rows(8, 1000))
	assert.Equal(t, int64(99), rng.Seed())
}
