package bitmap

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// FromRoaring materializes a roaring bitmap. The universe is one past the
// roaring maximum, or zero when rb is empty.
func FromRoaring(rb *roaring.Bitmap) *Bitmap {
	if rb == nil || rb.IsEmpty() {
		return New(0)
	}

	hi := rb.Maximum()
	if hi == math.MaxUint32 {
		panic("bitmap: index out of uint32 universe")
	}
	b := New(hi + 1)
	rb.Iterate(func(id uint32) bool {
		b.words[id/WordBits] |= uint64(1) << (id % WordBits)
		return true
	})
	b.rebuild()
	return b
}

// ToRoaring copies the set bits into a new roaring bitmap.
func (b *Bitmap) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	rb.AddMany(b.ToSlice(nil))
	return rb
}
