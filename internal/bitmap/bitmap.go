package bitmap

import (
	"math"
	"math/bits"
	"sort"

	"github.com/hupe1980/rowmap/internal/conv"
	"github.com/hupe1980/rowmap/internal/simd"
)

// BlockSize is the number of uint64 words per block (512 bits = 64 bytes).
const BlockSize = 8

// WordBits is the number of bits per word.
const WordBits = 64

// BlockBits is the number of bits per block.
const BlockBits = BlockSize * WordBits

// BlocksPerMaskWord is the number of blocks tracked per activeBlocks word.
const BlocksPerMaskWord = 64

// Bitmap is a growable bitmap with a block-level rank directory.
//
// The universe is [0, UniverseSize()). Bits at or beyond the universe are
// never set; Set grows the universe on demand.
type Bitmap struct {
	// words is the backing storage, a whole number of blocks long.
	// Words past the universe are always zero.
	words []uint64

	// activeBlocks has bit b set when block b has at least one set bit.
	activeBlocks []uint64

	// blockRank[b] is the number of set bits in blocks [0, b).
	// len(blockRank) == numBlocks()+1; the last entry is the cardinality.
	blockRank []uint32

	universeSize uint32
}

// New creates an empty Bitmap with the given universe size.
func New(universeSize uint32) *Bitmap {
	b := &Bitmap{blockRank: []uint32{0}}
	b.EnsureCapacity(universeSize)
	return b
}

// FromBools creates a Bitmap whose universe is len(bits) and whose set bits
// are the indexes holding true.
func FromBools(bools []bool) *Bitmap {
	b := New(conv.MustUint32(len(bools)))
	for i, v := range bools {
		if v {
			b.words[i/WordBits] |= uint64(1) << (uint(i) % WordBits)
		}
	}
	b.rebuild()
	return b
}

// FromRange creates a Bitmap over [0, end) with the bits [start, end) set.
func FromRange(start, end uint32) *Bitmap {
	b := New(end)
	b.setRange(start, end)
	b.rebuild()
	return b
}

func wordsFor(universeSize uint32) int {
	numWords := (uint64(universeSize) + WordBits - 1) / WordBits
	// Round up to block boundary
	numWords = ((numWords + BlockSize - 1) / BlockSize) * BlockSize
	return int(numWords)
}

func (b *Bitmap) numBlocks() int {
	return len(b.words) / BlockSize
}

// EnsureCapacity grows the universe to at least newSize. Storage grows
// geometrically so repeated appends stay amortized O(1).
func (b *Bitmap) EnsureCapacity(newSize uint32) {
	if newSize <= b.universeSize && b.words != nil {
		return
	}

	numWords := wordsFor(newSize)
	if numWords > len(b.words) {
		oldBlocks := b.numBlocks()
		if numWords <= cap(b.words) {
			b.words = b.words[:numWords]
		} else {
			grown := make([]uint64, numWords, max(numWords, 2*cap(b.words)))
			copy(grown, b.words)
			b.words = grown
		}

		numBlocks := numWords / BlockSize
		numMaskWords := (numBlocks + BlocksPerMaskWord - 1) / BlocksPerMaskWord
		for len(b.activeBlocks) < numMaskWords {
			b.activeBlocks = append(b.activeBlocks, 0)
		}

		total := b.blockRank[oldBlocks]
		for len(b.blockRank) < numBlocks+1 {
			b.blockRank = append(b.blockRank, total)
		}
	}

	if newSize > b.universeSize {
		b.universeSize = newSize
	}
}

// UniverseSize returns the number of addressable bits.
func (b *Bitmap) UniverseSize() uint32 {
	return b.universeSize
}

// Cardinality returns the number of set bits. O(1).
func (b *Bitmap) Cardinality() uint32 {
	return b.blockRank[b.numBlocks()]
}

// IsEmpty returns true if no bits are set.
func (b *Bitmap) IsEmpty() bool {
	return b.Cardinality() == 0
}

// Contains checks if a bit is set. O(1).
func (b *Bitmap) Contains(i uint32) bool {
	if i >= b.universeSize {
		return false
	}
	return b.words[i/WordBits]&(uint64(1)<<(i%WordBits)) != 0
}

// Set sets bit i, growing the universe to i+1 if needed.
// Returns true if the bit was newly set.
func (b *Bitmap) Set(i uint32) bool {
	if i == math.MaxUint32 {
		panic("bitmap: index out of uint32 universe")
	}
	if i >= b.universeSize {
		b.EnsureCapacity(i + 1)
	}

	wordIdx := i / WordBits
	mask := uint64(1) << (i % WordBits)
	if b.words[wordIdx]&mask != 0 {
		return false
	}
	b.words[wordIdx] |= mask

	blockIdx := int(wordIdx / BlockSize)
	b.setBlockActive(blockIdx)
	for k := blockIdx + 1; k < len(b.blockRank); k++ {
		b.blockRank[k]++
	}
	return true
}

// AddMany sets every id, growing the universe to cover the largest one.
// The directory is rebuilt once at the end.
func (b *Bitmap) AddMany(ids []uint32) {
	if len(ids) == 0 {
		return
	}

	var hi uint32
	for _, id := range ids {
		hi = max(hi, id)
	}
	if hi == math.MaxUint32 {
		panic("bitmap: index out of uint32 universe")
	}
	b.EnsureCapacity(hi + 1)

	for _, id := range ids {
		b.words[id/WordBits] |= uint64(1) << (id % WordBits)
	}
	b.rebuild()
}

// setRange sets bits [start, end) without touching the directory.
func (b *Bitmap) setRange(start, end uint32) {
	if start >= end {
		return
	}
	b.applyRange(start, end, func(w *uint64, mask uint64) { *w |= mask })
}

// clearRange clears bits [start, end) without touching the directory.
func (b *Bitmap) clearRange(start, end uint32) {
	end = min(end, b.universeSize)
	if start >= end {
		return
	}
	b.applyRange(start, end, func(w *uint64, mask uint64) { *w &^= mask })
}

func (b *Bitmap) applyRange(start, end uint32, apply func(w *uint64, mask uint64)) {
	startWord := start / WordBits
	endWord := (end - 1) / WordBits
	startBit := start % WordBits
	endBit := (end - 1) % WordBits

	if startWord == endWord {
		apply(&b.words[startWord], (^uint64(0)>>(63-endBit+startBit))<<startBit)
		return
	}
	apply(&b.words[startWord], ^uint64(0)<<startBit)
	for w := startWord + 1; w < endWord; w++ {
		apply(&b.words[w], ^uint64(0))
	}
	apply(&b.words[endWord], ^uint64(0)>>(63-endBit))
}

// rebuild recomputes the rank directory and the active block mask.
func (b *Bitmap) rebuild() {
	clear(b.activeBlocks)
	numBlocks := b.numBlocks()
	b.blockRank = b.blockRank[:numBlocks+1]
	b.blockRank[0] = 0
	for blk := 0; blk < numBlocks; blk++ {
		start := blk * BlockSize
		pop := simd.PopcountWords(b.words[start : start+BlockSize])
		if pop != 0 {
			b.setBlockActive(blk)
		}
		b.blockRank[blk+1] = b.blockRank[blk] + uint32(pop)
	}
}

//go:nosplit
func (b *Bitmap) setBlockActive(blockIdx int) {
	b.activeBlocks[blockIdx/BlocksPerMaskWord] |= uint64(1) << (blockIdx % BlocksPerMaskWord)
}

// Rank returns the number of set bits strictly before index i.
// For i at or beyond the universe it returns the cardinality.
func (b *Bitmap) Rank(i uint32) uint32 {
	if i >= b.universeSize {
		return b.Cardinality()
	}

	wordIdx := int(i / WordBits)
	blockIdx := wordIdx / BlockSize
	start := blockIdx * BlockSize

	rank := b.blockRank[blockIdx]
	rank += uint32(simd.PopcountWords(b.words[start:wordIdx]))
	mask := (uint64(1) << (i % WordBits)) - 1
	return rank + uint32(bits.OnesCount64(b.words[wordIdx]&mask))
}

// Select returns the index of the j-th set bit (0-indexed).
func (b *Bitmap) Select(j uint32) (uint32, bool) {
	if j >= b.Cardinality() {
		return 0, false
	}

	// First block whose cumulative count exceeds j.
	blockIdx := sort.Search(b.numBlocks(), func(k int) bool {
		return b.blockRank[k+1] > j
	})

	remaining := int(j - b.blockRank[blockIdx])
	start := blockIdx * BlockSize
	for w := start; w < start+BlockSize; w++ {
		word := b.words[w]
		popcount := bits.OnesCount64(word)
		if popcount > remaining {
			return uint32(w)*WordBits + select64(word, remaining), true
		}
		remaining -= popcount
	}
	// Unreachable while the directory is consistent.
	return 0, false
}

// select64 returns the index of the j-th set bit within a word.
func select64(word uint64, j int) uint32 {
	for i := 0; i < j; i++ {
		word &= word - 1
	}
	return uint32(bits.TrailingZeros64(word))
}

// Max returns the highest set bit.
func (b *Bitmap) Max() (uint32, bool) {
	for maskIdx := len(b.activeBlocks) - 1; maskIdx >= 0; maskIdx-- {
		mask := b.activeBlocks[maskIdx]
		if mask == 0 {
			continue
		}
		blockIdx := maskIdx*BlocksPerMaskWord + 63 - bits.LeadingZeros64(mask)
		start := blockIdx * BlockSize
		for w := start + BlockSize - 1; w >= start; w-- {
			if word := b.words[w]; word != 0 {
				return uint32(w)*WordBits + uint32(63-bits.LeadingZeros64(word)), true
			}
		}
	}
	return 0, false
}

// ForEach iterates over all set bits in ascending order.
// Returns early if fn returns false.
func (b *Bitmap) ForEach(fn func(uint32) bool) {
	for maskIdx, mask := range b.activeBlocks {
		for mask != 0 {
			bit := bits.TrailingZeros64(mask)
			blockIdx := maskIdx*BlocksPerMaskWord + bit

			start := blockIdx * BlockSize
			baseID := uint32(start * WordBits)
			for w := start; w < start+BlockSize; w++ {
				word := b.words[w]
				for word != 0 {
					if !fn(baseID + uint32(bits.TrailingZeros64(word))) {
						return
					}
					word &= word - 1
				}
				baseID += WordBits
			}

			mask &= mask - 1
		}
	}
}

// ToSlice appends all set bits, ascending, to dst[:0] and returns it.
func (b *Bitmap) ToSlice(dst []uint32) []uint32 {
	card := int(b.Cardinality())
	if cap(dst) < card {
		dst = make([]uint32, 0, card)
	} else {
		dst = dst[:0]
	}
	b.ForEach(func(id uint32) bool {
		dst = append(dst, id)
		return true
	})
	return dst
}

// RemoveIf clears every set bit for which pred returns true and returns the
// number of bits cleared.
func (b *Bitmap) RemoveIf(pred func(uint32) bool) int {
	removed := 0
	b.ForEach(func(id uint32) bool {
		if pred(id) {
			b.words[id/WordBits] &^= uint64(1) << (id % WordBits)
			removed++
		}
		return true
	})
	if removed > 0 {
		b.rebuild()
	}
	return removed
}

// RankWindow returns a new Bitmap over the same universe that keeps only
// the set bits whose rank lies in [lo, hi).
func (b *Bitmap) RankWindow(lo, hi uint32) *Bitmap {
	out := b.Clone()
	card := b.Cardinality()
	hi = min(hi, card)
	if lo >= hi {
		clear(out.words)
		out.rebuild()
		return out
	}

	first, _ := b.Select(lo)
	out.clearRange(0, first)
	if hi < card {
		next, _ := b.Select(hi)
		out.clearRange(next, out.universeSize)
	}
	out.rebuild()
	return out
}

// And performs in-place intersection: b = b AND other.
func (b *Bitmap) And(other *Bitmap) {
	simd.AndWords(b.words, other.words)
	b.rebuild()
}

// AndNot performs in-place difference: b = b AND NOT other.
func (b *Bitmap) AndNot(other *Bitmap) {
	simd.AndNotWords(b.words, other.words)
	b.rebuild()
}

// Clone creates an independent copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{
		words:        append([]uint64(nil), b.words...),
		activeBlocks: append([]uint64(nil), b.activeBlocks...),
		blockRank:    append([]uint32(nil), b.blockRank...),
		universeSize: b.universeSize,
	}
}
