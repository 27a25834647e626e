package simd

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAndWords(t *testing.T) {
	tests := []struct {
		name string
		dst  []uint64
		src  []uint64
		want []uint64
	}{
		{
			name: "Empty",
			dst:  []uint64{},
			src:  []uint64{},
			want: []uint64{},
		},
		{
			name: "Single word",
			dst:  []uint64{0xFF00FF00FF00FF00},
			src:  []uint64{0x0F0F0F0F0F0F0F0F},
			want: []uint64{0x0F000F000F000F00},
		},
		{
			name: "5 words (unrolled + tail)",
			dst:  []uint64{0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			src:  []uint64{0x0F, 0xF0, 0x55, 0xAA, 0x33},
			want: []uint64{0x0F, 0xF0, 0x55, 0xAA, 0x33},
		},
		{
			name: "Shorter src clears tail",
			dst:  []uint64{0xFF, 0xFF, 0xFF},
			src:  []uint64{0x0F},
			want: []uint64{0x0F, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := append([]uint64(nil), tt.dst...)
			AndWords(dst, tt.src)
			assert.Equal(t, len(tt.want), len(dst))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], dst[i], "word %d", i)
			}
		})
	}
}

func TestAndNotWords(t *testing.T) {
	dst := []uint64{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	src := []uint64{0x0F, 0xF0, 0x00, 0xFF}
	AndNotWords(dst, src)
	assert.Equal(t, []uint64{0xF0, 0x0F, 0xFF, 0x00, 0xFF, 0xFF}, dst)
}

func TestKernelsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{0, 1, 3, 4, 7, 8, 63, 64, 65} {
		words := make([]uint64, n)
		want := 0
		for i := range words {
			words[i] = rng.Uint64()
			want += bits.OnesCount64(words[i])
		}

		assert.Equal(t, want, popcountWordsGeneric(words), "generic n=%d", n)
		assert.Equal(t, want, popcountWordsUnrolled(words), "unrolled n=%d", n)
		assert.Equal(t, want, PopcountWords(words), "active n=%d", n)

		a := append([]uint64(nil), words...)
		b := append([]uint64(nil), words...)
		mask := make([]uint64, n)
		for i := range mask {
			mask[i] = rng.Uint64()
		}
		andWordsGeneric(a, mask)
		andWordsUnrolled(b, mask)
		assert.Equal(t, a, b, "and n=%d", n)

		a = append(a[:0], words...)
		b = append(b[:0], words...)
		andNotWordsGeneric(a, mask)
		andNotWordsUnrolled(b, mask)
		assert.Equal(t, a, b, "andnot n=%d", n)
	}
}

func TestISA(t *testing.T) {
	for _, isa := range []ISA{Generic, POPCNT, NEON} {
		parsed, ok := ParseISA(isa.String())
		assert.True(t, ok)
		assert.Equal(t, isa, parsed)
	}

	_, ok := ParseISA("avx9000")
	assert.False(t, ok)
	assert.Equal(t, "unknown", ISA(99).String())

	assert.True(t, isISAAvailable(Generic))
	assert.True(t, isISAAvailable(ActiveISA()))
}

func BenchmarkPopcountWords(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	words := make([]uint64, 1<<12)
	for i := range words {
		words[i] = rng.Uint64()
	}

	kernels := map[string]func([]uint64) int{
		"generic":  popcountWordsGeneric,
		"unrolled": popcountWordsUnrolled,
	}
	for name, fn := range kernels {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(words) * 8))
			for i := 0; i < b.N; i++ {
				_ = fn(words)
			}
		})
	}
}

func BenchmarkAndNotWords(b *testing.B) {
	rng := rand.New(rand.NewSource(2))
	dst := make([]uint64, 1<<12)
	src := make([]uint64, 1<<12)
	for i := range src {
		src[i] = rng.Uint64()
	}

	kernels := map[string]func(dst, src []uint64){
		"generic":  andNotWordsGeneric,
		"unrolled": andNotWordsUnrolled,
	}
	for name, fn := range kernels {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(dst) * 8))
			for i := 0; i < b.N; i++ {
				fn(dst, src)
			}
		})
	}
}
