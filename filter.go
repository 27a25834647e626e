package rowmap

import (
	"slices"

	"github.com/hupe1980/rowmap/internal/bitmap"
)

// RemoveIf removes every position whose row satisfies pred. Surviving
// positions keep their relative order and are renumbered from zero.
// pred is called exactly once per position, duplicates included.
//
// A range stays a range when the survivors are still contiguous and
// becomes a bitmap otherwise. Bitmaps and index lists are filtered in
// place.
func (rm *RowMap) RemoveIf(pred func(RowID) bool) {
	switch rm.kind {
	case KindRange:
		rm.removeIfRange(pred)
	case KindBitmap:
		rm.bits.RemoveIf(func(id uint32) bool { return pred(RowID(id)) })
	case KindIndexList:
		rm.index = slices.DeleteFunc(rm.index, pred)
	default:
		panic(unknownKind(rm.kind))
	}
}

// removeIfRange tracks the survivors as a contiguous run [lo, hi) and only
// materializes a bitmap once a gap appears between two survivors.
func (rm *RowMap) removeIfRange(pred func(RowID) bool) {
	var (
		lo, hi = rm.start, rm.start
		bits   *bitmap.Bitmap
	)
	for r := rm.start; r < rm.end; r++ {
		if pred(r) {
			continue
		}
		switch {
		case bits != nil:
			bits.Set(uint32(r))
		case lo == hi:
			lo, hi = r, r+1
		case r == hi:
			hi++
		default:
			bits = bitmap.FromRange(uint32(lo), uint32(hi))
			bits.Set(uint32(r))
		}
	}

	if bits == nil {
		rm.start, rm.end = lo, hi
		return
	}

	size := rm.Size()
	bits.EnsureCapacity(uint32(rm.end))
	rm.kind, rm.bits = KindBitmap, bits
	rm.start, rm.end = 0, 0
	noteConversion(KindRange, KindBitmap, size)
}
