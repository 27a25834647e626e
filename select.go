package rowmap

import (
	"slices"

	"github.com/hupe1980/rowmap/internal/bitmap"
)

// SelectRows composes rm with picker. Every row of picker is read as a
// position in rm, and the result R has picker.Size() positions with
//
//	R.Get(i) == rm.Get(picker.Get(i))
//
// Neither operand is modified and the result shares no storage with them.
//
// The result backing follows the operands:
//
//	base \ picker  Range      Bitmap     IndexList
//	Range          Range      Bitmap     IndexList
//	Bitmap         Bitmap     Bitmap     IndexList
//	IndexList      IndexList  IndexList  IndexList
//
// It panics with *ErrInvalidPicker when picker yields a position >= rm.Size().
func (rm *RowMap) SelectRows(picker *RowMap) *RowMap {
	if err := rm.CheckPicker(picker); err != nil {
		panic(err)
	}

	res := rm.selectRows(picker)

	cfg := config()
	cfg.metricsCollector.RecordSelect(rm.kind, picker.kind, res.kind)
	cfg.logger.LogSelect(rm.kind, picker.kind, res.kind, res.Size())
	return res
}

// CheckPicker returns the error SelectRows would panic with for picker,
// or nil when every picker row is a valid position in rm.
func (rm *RowMap) CheckPicker(picker *RowMap) error {
	if picker.Empty() {
		return nil
	}

	var hi uint32
	switch picker.kind {
	case KindRange:
		hi = uint32(picker.end - 1)
	case KindBitmap:
		hi, _ = picker.bits.Max()
	case KindIndexList:
		hi = uint32(slices.Max(picker.index))
	default:
		panic(unknownKind(picker.kind))
	}

	n := rm.Size()
	if hi < n {
		return nil
	}
	for i, p := range picker.All() {
		if uint32(p) >= n {
			return &ErrInvalidPicker{
				Index: i,
				cause: &ErrPositionOutOfRange{Position: uint32(p), Size: n},
			}
		}
	}
	return nil
}

// usesPointwise reports whether composing these backings evaluates the
// picker position by position into an index list.
func usesPointwise(base, picker Kind) bool {
	return picker == KindIndexList || base == KindIndexList && picker == KindBitmap
}

func (rm *RowMap) selectRows(picker *RowMap) *RowMap {
	switch {
	case usesPointwise(rm.kind, picker.kind):
		return fromIndex(rm.selectPointwise(picker))

	case rm.kind == KindRange && picker.kind == KindRange:
		if picker.Empty() {
			return FromRange(rm.start, rm.start)
		}
		return FromRange(rm.start+picker.start, rm.start+picker.end)

	case rm.kind == KindRange && picker.kind == KindBitmap:
		return fromBits(shiftBits(picker.bits, uint32(rm.start)))

	case rm.kind == KindBitmap && picker.kind == KindRange:
		return fromBits(rm.bits.RankWindow(uint32(picker.start), uint32(picker.end)))

	case rm.kind == KindBitmap && picker.kind == KindBitmap:
		return fromBits(selectBitsByRank(rm.bits, picker.bits))

	case rm.kind == KindIndexList && picker.kind == KindRange:
		if picker.Empty() {
			return fromIndex(nil)
		}
		return fromIndex(slices.Clone(rm.index[picker.start:picker.end]))

	default:
		panic(unknownKind(rm.kind))
	}
}

// selectPointwise evaluates the composition one picker position at a time.
// It is correct for every pairing of backings.
func (rm *RowMap) selectPointwise(picker *RowMap) []RowID {
	rows := make([]RowID, 0, picker.Size())
	if rm.kind == KindBitmap && picker.Size() > rm.Size() {
		// Repeated positions: one ascending pass beats a Select per entry.
		base := bitmapToIndexList(rm.bits, 0)
		for p := range picker.Rows() {
			rows = append(rows, base[p])
		}
		return rows
	}
	for p := range picker.Rows() {
		rows = append(rows, rm.Get(uint32(p)))
	}
	return rows
}

// shiftBits returns a bitmap with every set bit of b moved up by offset.
func shiftBits(b *bitmap.Bitmap, offset uint32) *bitmap.Bitmap {
	ids := b.ToSlice(nil)
	for i := range ids {
		ids[i] += offset
	}
	out := bitmap.New(0)
	out.AddMany(ids)
	return out
}

// selectBitsByRank keeps the set bits of base whose rank is set in picker.
func selectBitsByRank(base, picker *bitmap.Bitmap) *bitmap.Bitmap {
	out := bitmap.New(base.UniverseSize())
	limit, ok := picker.Max()
	if !ok {
		return out
	}

	ids := make([]uint32, 0, picker.Cardinality())
	rank := uint32(0)
	base.ForEach(func(id uint32) bool {
		if picker.Contains(rank) {
			ids = append(ids, id)
		}
		rank++
		return rank <= limit
	})
	out.AddMany(ids)
	return out
}

// Intersect returns the rows selected by both rm and other, ascending and
// without duplicates. Positions and multiplicities of either operand are
// not preserved. The result is a range when both operands are ranges and
// a bitmap otherwise.
func (rm *RowMap) Intersect(other *RowMap) *RowMap {
	if rm.kind == KindRange && other.kind == KindRange {
		start, end := max(rm.start, other.start), min(rm.end, other.end)
		if start >= end {
			return FromRange(0, 0)
		}
		return FromRange(start, end)
	}

	b := rm.distinctBits()
	b.And(other.distinctBits())
	return fromBits(b)
}

// Difference returns the rows selected by rm and not by other, ascending
// and without duplicates. Like Intersect it works on row sets. The result
// is a range when both operands are ranges and the survivors stay
// contiguous, and a bitmap otherwise.
func (rm *RowMap) Difference(other *RowMap) *RowMap {
	if rm.kind == KindRange && other.kind == KindRange {
		switch {
		case other.Empty() || other.end <= rm.start || other.start >= rm.end:
			return FromRange(rm.start, rm.end)
		case other.start <= rm.start && other.end >= rm.end:
			return FromRange(0, 0)
		case other.start <= rm.start:
			return FromRange(other.end, rm.end)
		case other.end >= rm.end:
			return FromRange(rm.start, other.start)
		}
	}

	b := rm.distinctBits()
	b.AndNot(other.distinctBits())
	return fromBits(b)
}
