package rowmap

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/hupe1980/rowmap/internal/bitmap"
	"github.com/hupe1980/rowmap/internal/conv"
)

// RowID is a row number in the underlying column storage.
type RowID uint32

// Kind identifies the backing representation of a RowMap.
type Kind uint8

const (
	// KindRange is a contiguous ascending interval [start, end).
	KindRange Kind = iota
	// KindBitmap is a set of rows in ascending order, one bit per row.
	KindBitmap
	// KindIndexList is an explicit list of rows in any order.
	KindIndexList
)

const numKinds = int(KindIndexList) + 1

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindBitmap:
		return "bitmap"
	case KindIndexList:
		return "indexlist"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// RowMap is an ordered selection of rows. The zero value is an empty range.
//
// A RowMap is used through a pointer: constructors and compositions return
// *RowMap and every method takes a pointer receiver. Dereferencing and
// copying the struct is not supported; use Clone.
//
// Exactly one arm is populated, as selected by kind.
type RowMap struct {
	kind Kind

	// KindRange
	start RowID
	end   RowID

	// KindBitmap
	bits *bitmap.Bitmap

	// KindIndexList
	index []RowID
}

// FromRange returns a RowMap over the rows [start, end).
// It panics with *ErrInvalidRange when start > end.
func FromRange(start, end RowID) *RowMap {
	if start > end {
		panic(&ErrInvalidRange{Start: start, End: end})
	}
	return &RowMap{kind: KindRange, start: start, end: end}
}

// FromBitmap returns a RowMap selecting every row i for which bits[i] is
// true, in ascending order.
func FromBitmap(bits []bool) *RowMap {
	return &RowMap{kind: KindBitmap, bits: bitmap.FromBools(bits)}
}

// FromIndexList returns a RowMap whose position p maps to rows[p].
// rows is copied.
func FromIndexList(rows []RowID) *RowMap {
	conv.MustUint32(len(rows))
	return &RowMap{kind: KindIndexList, index: slices.Clone(rows)}
}

func fromBits(b *bitmap.Bitmap) *RowMap {
	return &RowMap{kind: KindBitmap, bits: b}
}

func fromIndex(rows []RowID) *RowMap {
	if rows == nil {
		rows = []RowID{}
	}
	return &RowMap{kind: KindIndexList, index: rows}
}

// Kind returns the current backing.
func (rm *RowMap) Kind() Kind {
	return rm.kind
}

// Size returns the number of positions.
func (rm *RowMap) Size() uint32 {
	switch rm.kind {
	case KindRange:
		return uint32(rm.end - rm.start)
	case KindBitmap:
		return rm.bits.Cardinality()
	case KindIndexList:
		return uint32(len(rm.index))
	default:
		panic(unknownKind(rm.kind))
	}
}

// Empty reports whether the RowMap has no positions.
func (rm *RowMap) Empty() bool {
	return rm.Size() == 0
}

// Get returns the row at position pos.
// It panics with *ErrPositionOutOfRange when pos >= Size().
func (rm *RowMap) Get(pos uint32) RowID {
	switch rm.kind {
	case KindRange:
		if pos >= uint32(rm.end-rm.start) {
			panic(rm.outOfRange(pos))
		}
		return rm.start + RowID(pos)
	case KindBitmap:
		row, ok := rm.bits.Select(pos)
		if !ok {
			panic(rm.outOfRange(pos))
		}
		return RowID(row)
	case KindIndexList:
		if uint64(pos) >= uint64(len(rm.index)) {
			panic(rm.outOfRange(pos))
		}
		return rm.index[pos]
	default:
		panic(unknownKind(rm.kind))
	}
}

func (rm *RowMap) outOfRange(pos uint32) *ErrPositionOutOfRange {
	return &ErrPositionOutOfRange{Position: pos, Size: rm.Size()}
}

// IndexOf returns the first position mapping to row.
// The second result is false when row is not selected.
func (rm *RowMap) IndexOf(row RowID) (uint32, bool) {
	switch rm.kind {
	case KindRange:
		if row < rm.start || row >= rm.end {
			return 0, false
		}
		return uint32(row - rm.start), true
	case KindBitmap:
		if !rm.bits.Contains(uint32(row)) {
			return 0, false
		}
		return rm.bits.Rank(uint32(row)), true
	case KindIndexList:
		// Linear scan; there is no reverse index.
		i := slices.Index(rm.index, row)
		if i < 0 {
			return 0, false
		}
		return uint32(i), true
	default:
		panic(unknownKind(rm.kind))
	}
}

// Contains reports whether row is selected at any position.
func (rm *RowMap) Contains(row RowID) bool {
	switch rm.kind {
	case KindRange:
		return row >= rm.start && row < rm.end
	case KindBitmap:
		return rm.bits.Contains(uint32(row))
	case KindIndexList:
		return slices.Contains(rm.index, row)
	default:
		panic(unknownKind(rm.kind))
	}
}

// All returns an iterator over (position, row) pairs in position order.
func (rm *RowMap) All() iter.Seq2[uint32, RowID] {
	return func(yield func(uint32, RowID) bool) {
		switch rm.kind {
		case KindRange:
			for r := rm.start; r < rm.end; r++ {
				if !yield(uint32(r-rm.start), r) {
					return
				}
			}
		case KindBitmap:
			pos := uint32(0)
			rm.bits.ForEach(func(id uint32) bool {
				ok := yield(pos, RowID(id))
				pos++
				return ok
			})
		case KindIndexList:
			for i, r := range rm.index {
				if !yield(uint32(i), r) {
					return
				}
			}
		default:
			panic(unknownKind(rm.kind))
		}
	}
}

// Rows returns an iterator over the rows in position order.
func (rm *RowMap) Rows() iter.Seq[RowID] {
	return func(yield func(RowID) bool) {
		for _, r := range rm.All() {
			if !yield(r) {
				return
			}
		}
	}
}

// ToSlice appends the rows in position order to dst[:0] and returns it.
func (rm *RowMap) ToSlice(dst []RowID) []RowID {
	n := int(rm.Size())
	if cap(dst) < n {
		dst = make([]RowID, 0, n)
	} else {
		dst = dst[:0]
	}
	for r := range rm.Rows() {
		dst = append(dst, r)
	}
	return dst
}

// Clone returns an independent copy sharing no storage with rm.
func (rm *RowMap) Clone() *RowMap {
	switch rm.kind {
	case KindRange:
		return FromRange(rm.start, rm.end)
	case KindBitmap:
		return fromBits(rm.bits.Clone())
	case KindIndexList:
		return fromIndex(slices.Clone(rm.index))
	default:
		panic(unknownKind(rm.kind))
	}
}

// Equal reports whether rm and other map every position to the same row,
// regardless of backing.
func (rm *RowMap) Equal(other *RowMap) bool {
	if rm.Size() != other.Size() {
		return false
	}
	if rm.kind == KindRange && other.kind == KindRange {
		return rm.start == other.start || rm.Size() == 0
	}

	next, stop := iter.Pull(other.Rows())
	defer stop()
	for r := range rm.Rows() {
		o, ok := next()
		if !ok || o != r {
			return false
		}
	}
	return true
}

// maxStringRows bounds the number of rows String renders.
const maxStringRows = 16

// String returns a compact debug representation.
func (rm *RowMap) String() string {
	switch rm.kind {
	case KindRange:
		return fmt.Sprintf("range[%d,%d)", rm.start, rm.end)
	case KindBitmap:
		return "bitmap{" + joinRows(rm.Rows(), rm.Size(), ",") + "}"
	case KindIndexList:
		return "index[" + joinRows(rm.Rows(), rm.Size(), " ") + "]"
	default:
		return unknownKind(rm.kind).Error()
	}
}

func joinRows(rows iter.Seq[RowID], size uint32, sep string) string {
	var sb strings.Builder
	n := uint32(0)
	for r := range rows {
		if n == maxStringRows {
			fmt.Fprintf(&sb, "%s...(+%d)", sep, size-n)
			break
		}
		if n > 0 {
			sb.WriteString(sep)
		}
		fmt.Fprintf(&sb, "%d", r)
		n++
	}
	return sb.String()
}

func unknownKind(k Kind) error {
	return fmt.Errorf("rowmap: unknown backing %s", k)
}
