package rowmap

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/rowmap/internal/bitmap"
)

// FromRoaring returns a bitmap-backed RowMap selecting the rows of rb in
// ascending order. rb is not retained.
func FromRoaring(rb *roaring.Bitmap) *RowMap {
	return fromBits(bitmap.FromRoaring(rb))
}

// ToRoaring returns the set of distinct rows selected by rm.
// Position order and duplicates are not represented.
func (rm *RowMap) ToRoaring() *roaring.Bitmap {
	switch rm.kind {
	case KindRange:
		rb := roaring.New()
		rb.AddRange(uint64(rm.start), uint64(rm.end))
		return rb
	case KindBitmap:
		return rm.bits.ToRoaring()
	case KindIndexList:
		ids := make([]uint32, len(rm.index))
		for i, r := range rm.index {
			ids[i] = uint32(r)
		}
		return roaring.BitmapOf(ids...)
	default:
		panic(unknownKind(rm.kind))
	}
}
