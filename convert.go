package rowmap

import (
	"github.com/hupe1980/rowmap/internal/bitmap"
)

// The upgrade lattice is Range -> Bitmap -> IndexList, with a direct
// Range -> IndexList edge. These run only when an operation's result
// cannot be expressed in the current backing.

// rangeToIndexList materializes a range as its explicit row list, with
// spare capacity for extra appended rows.
func rangeToIndexList(start, end RowID, extra int) []RowID {
	rows := make([]RowID, 0, int(end-start)+extra)
	for r := start; r < end; r++ {
		rows = append(rows, r)
	}
	return rows
}

// bitmapToIndexList materializes a bitmap as its ascending row list.
func bitmapToIndexList(b *bitmap.Bitmap, extra int) []RowID {
	rows := make([]RowID, 0, int(b.Cardinality())+extra)
	b.ForEach(func(id uint32) bool {
		rows = append(rows, RowID(id))
		return true
	})
	return rows
}

// toIndexList converts rm in place to an IndexList backing.
func (rm *RowMap) toIndexList(extra int) {
	from, size := rm.kind, rm.Size()
	switch rm.kind {
	case KindRange:
		rm.index = rangeToIndexList(rm.start, rm.end, extra)
		rm.start, rm.end = 0, 0
	case KindBitmap:
		rm.index = bitmapToIndexList(rm.bits, extra)
		rm.bits = nil
	case KindIndexList:
		return
	default:
		panic(unknownKind(rm.kind))
	}
	rm.kind = KindIndexList
	noteConversion(from, KindIndexList, size)
}

// distinctBits returns the set of selected rows as a bitmap. The result is
// always freshly allocated.
func (rm *RowMap) distinctBits() *bitmap.Bitmap {
	switch rm.kind {
	case KindRange:
		return bitmap.FromRange(uint32(rm.start), uint32(rm.end))
	case KindBitmap:
		return rm.bits.Clone()
	case KindIndexList:
		b := bitmap.New(0)
		ids := make([]uint32, len(rm.index))
		for i, r := range rm.index {
			ids[i] = uint32(r)
		}
		b.AddMany(ids)
		return b
	default:
		panic(unknownKind(rm.kind))
	}
}

func noteConversion(from, to Kind, size uint32) {
	cfg := config()
	cfg.logger.LogConversion(from, to, size)
	cfg.metricsCollector.RecordConversion(from, to, size)
}
