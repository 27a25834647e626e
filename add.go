package rowmap

import "math"

// Add appends row at position Size().
//
// A range extends in place when row == end, and an empty range re-anchors
// at row. Any other row converts the range to an index list.
//
// A bitmap accepts row only when it is above every selected row (or the
// bitmap is empty); otherwise the new position would not be last in row
// order. That includes a not-yet-selected row between the minimum and the
// maximum: setting its bit would renumber every later position, so it
// panics with *ErrUnsupportedAppend instead, as does a row at or below the
// minimum and the current maximum itself.
//
// An index list always appends.
func (rm *RowMap) Add(row RowID) {
	switch rm.kind {
	case KindRange:
		if row == rm.end && row < math.MaxUint32 {
			rm.end++
			return
		}
		if rm.start == rm.end && row < math.MaxUint32 {
			rm.start, rm.end = row, row+1
			return
		}
		rm.toIndexList(1)
		rm.index = append(rm.index, row)
	case KindBitmap:
		if hi, ok := rm.bits.Max(); ok && uint32(row) <= hi {
			panic(&ErrUnsupportedAppend{Kind: KindBitmap, Row: row, Max: RowID(hi)})
		}
		if row == math.MaxUint32 {
			// Beyond any bitmap universe.
			rm.toIndexList(1)
			rm.index = append(rm.index, row)
			return
		}
		rm.bits.Set(uint32(row))
	case KindIndexList:
		rm.index = append(rm.index, row)
	default:
		panic(unknownKind(rm.kind))
	}
}
