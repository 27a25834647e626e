package simd

import "math/bits"

// Kernel function pointers for bitmap word operations. The scalar versions
// are the default; installKernels swaps in the unrolled set when the CPU has
// a native population count. Both sets are pure Go over bits.OnesCount64;
// the unrolled set only breaks the accumulator dependency chain.
var (
	kernelAndWords      = andWordsGeneric
	kernelAndNotWords   = andNotWordsGeneric
	kernelPopcountWords = popcountWordsGeneric
)

func installKernels(isa ISA) {
	switch isa {
	case POPCNT, NEON:
		kernelAndWords = andWordsUnrolled
		kernelAndNotWords = andNotWordsUnrolled
		kernelPopcountWords = popcountWordsUnrolled
	default:
		kernelAndWords = andWordsGeneric
		kernelAndNotWords = andNotWordsGeneric
		kernelPopcountWords = popcountWordsGeneric
	}
}

// AndWords performs dst[i] &= src[i] for i < min(len(dst), len(src)).
// Words of dst beyond len(src) are cleared.
func AndWords(dst, src []uint64) {
	n := min(len(dst), len(src))
	kernelAndWords(dst[:n], src[:n])
	clear(dst[n:])
}

// AndNotWords performs dst[i] &^= src[i] for i < min(len(dst), len(src)).
func AndNotWords(dst, src []uint64) {
	n := min(len(dst), len(src))
	kernelAndNotWords(dst[:n], src[:n])
}

// PopcountWords counts all set bits across words.
func PopcountWords(words []uint64) int {
	return kernelPopcountWords(words)
}

func andWordsGeneric(dst, src []uint64) {
	for i := range dst {
		dst[i] &= src[i]
	}
}

func andNotWordsGeneric(dst, src []uint64) {
	for i := range dst {
		dst[i] &^= src[i]
	}
}

func popcountWordsGeneric(words []uint64) int {
	count := 0
	for _, w := range words {
		count += bits.OnesCount64(w)
	}
	return count
}

func andWordsUnrolled(dst, src []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] &= src[i]
		dst[i+1] &= src[i+1]
		dst[i+2] &= src[i+2]
		dst[i+3] &= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] &= src[i]
	}
}

func andNotWordsUnrolled(dst, src []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] &^= src[i]
		dst[i+1] &^= src[i+1]
		dst[i+2] &^= src[i+2]
		dst[i+3] &^= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] &^= src[i]
	}
}

// popcountWordsUnrolled keeps four independent accumulators so the
// population count instructions can issue back to back.
func popcountWordsUnrolled(words []uint64) int {
	var c0, c1, c2, c3 int
	i := 0
	for ; i+4 <= len(words); i += 4 {
		c0 += bits.OnesCount64(words[i])
		c1 += bits.OnesCount64(words[i+1])
		c2 += bits.OnesCount64(words[i+2])
		c3 += bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		c0 += bits.OnesCount64(words[i])
	}
	return c0 + c1 + c2 + c3
}
