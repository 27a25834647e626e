package rowmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rowmap/testutil"
)

var allKinds = []Kind{KindRange, KindBitmap, KindIndexList}

func toRowIDs(ids []uint32) []RowID {
	rows := make([]RowID, len(ids))
	for i, id := range ids {
		rows[i] = RowID(id)
	}
	return rows
}

// randomRowMap builds a RowMap of the given kind whose rows lie in
// [0, universe). unique restricts index lists to distinct rows.
func randomRowMap(rng *testutil.RNG, kind Kind, universe uint32, unique bool) *RowMap {
	switch kind {
	case KindRange:
		start, end := rng.Range(universe, universe)
		end = min(end, universe)
		return FromRange(RowID(start), RowID(end))
	case KindBitmap:
		return FromBitmap(rng.Mask(int(universe), rng.Float64()))
	case KindIndexList:
		n := rng.Intn(int(universe) + 1)
		if unique {
			return FromIndexList(toRowIDs(rng.DistinctRows(n, universe)))
		}
		return FromIndexList(toRowIDs(rng.Rows(n, universe)))
	default:
		panic(unknownKind(kind))
	}
}

// randomPicker builds a picker of the given kind whose rows are valid
// positions in a base of the given size.
func randomPicker(rng *testutil.RNG, kind Kind, size uint32) *RowMap {
	if size == 0 {
		switch kind {
		case KindRange:
			return FromRange(0, 0)
		case KindBitmap:
			return FromBitmap(nil)
		default:
			return FromIndexList(nil)
		}
	}
	switch kind {
	case KindIndexList:
		return FromIndexList(toRowIDs(rng.Positions(rng.Intn(int(size)*2+1), size)))
	default:
		return randomRowMap(rng, kind, size, false)
	}
}

func TestPropertySizeConsistency(t *testing.T) {
	rng := testutil.NewRNG(1)
	for _, kind := range allKinds {
		for range 50 {
			rm := randomRowMap(rng, kind, 700, false)

			n := uint32(0)
			for p, r := range rm.All() {
				require.Equal(t, n, p)
				require.Equal(t, r, rm.Get(p))
				n++
			}
			require.Equal(t, rm.Size(), n, "%s", rm)
			require.Panics(t, func() { rm.Get(n) })
		}
	}
}

func TestPropertyIndexOf(t *testing.T) {
	rng := testutil.NewRNG(2)
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			for range 50 {
				unique := randomRowMap(rng, kind, 600, true)
				for p, r := range unique.All() {
					got, ok := unique.IndexOf(r)
					require.True(t, ok)
					require.Equal(t, p, got, "round trip in %s", unique)
				}

				dup := randomRowMap(rng, kind, 60, false)
				first := map[RowID]uint32{}
				for p, r := range dup.All() {
					if _, seen := first[r]; !seen {
						first[r] = p
					}
				}
				for r := RowID(0); r < 70; r++ {
					got, ok := dup.IndexOf(r)
					want, present := first[r]
					require.Equal(t, present, ok, "row %d in %s", r, dup)
					if present {
						require.Equal(t, want, got, "first match of row %d in %s", r, dup)
					}
				}
			}
		})
	}
}

func TestPropertyComposition(t *testing.T) {
	rng := testutil.NewRNG(3)
	for _, baseKind := range allKinds {
		for _, pickerKind := range allKinds {
			t.Run(fmt.Sprintf("%s/%s", baseKind, pickerKind), func(t *testing.T) {
				for range 40 {
					base := randomRowMap(rng, baseKind, 1500, false)
					picker := randomPicker(rng, pickerKind, base.Size())
					require.NoError(t, base.CheckPicker(picker))

					res := base.SelectRows(picker)

					baseRows := base.ToSlice(nil)
					require.Equal(t, picker.Size(), res.Size())
					for i, p := range picker.All() {
						require.Equal(t, baseRows[p], res.Get(i))
					}
					require.Equal(t, fromIndex(base.selectPointwise(picker)).ToSlice(nil), res.ToSlice(nil))
				}
			})
		}
	}
}

func TestPropertyCompositionChain(t *testing.T) {
	// filter -> sort -> filter, the way a query plan stacks selections.
	rng := testutil.NewRNG(4)
	table := FromRange(0, 2000)

	filtered := table.Clone()
	filtered.RemoveIf(func(r RowID) bool { return r%3 == 0 })
	require.Equal(t, KindBitmap, filtered.Kind())

	order := rng.DistinctRows(int(filtered.Size()), filtered.Size())
	sorted := filtered.SelectRows(FromIndexList(toRowIDs(order)))
	require.Equal(t, KindIndexList, sorted.Kind())

	top := sorted.SelectRows(FromRange(0, 10))
	for i := range uint32(10) {
		assert.Equal(t, filtered.Get(order[i]), top.Get(i))
		assert.NotZero(t, top.Get(i)%3)
	}
}

func TestPropertyRemoveIf(t *testing.T) {
	rng := testutil.NewRNG(5)
	preds := map[string]func(RowID) bool{
		"even":     func(r RowID) bool { return r%2 == 0 },
		"none":     func(RowID) bool { return false },
		"all":      func(RowID) bool { return true },
		"low":      func(r RowID) bool { return r < 300 },
		"sparse":   func(r RowID) bool { return r%7 != 0 },
		"interval": func(r RowID) bool { return r >= 100 && r < 200 },
	}

	for _, kind := range allKinds {
		for name, pred := range preds {
			t.Run(kind.String()+"/"+name, func(t *testing.T) {
				for range 20 {
					rm := randomRowMap(rng, kind, 800, false)

					var want []RowID
					for r := range rm.Rows() {
						if !pred(r) {
							want = append(want, r)
						}
					}

					rm.RemoveIf(pred)

					require.Equal(t, uint32(len(want)), rm.Size())
					for i, w := range want {
						require.Equal(t, w, rm.Get(uint32(i)))
					}
					for r := range rm.Rows() {
						require.False(t, pred(r))
					}
				}
			})
		}
	}
}

func TestPropertyAppendAfter(t *testing.T) {
	rng := testutil.NewRNG(6)
	for _, kind := range allKinds {
		for range 50 {
			rm := randomRowMap(rng, kind, 900, false)

			var hi RowID
			for r := range rm.Rows() {
				hi = max(hi, r)
			}

			for step := range 5 {
				row := hi + 1 + RowID(rng.Intn(3))
				if step%2 == 0 && rm.Kind() == KindRange && !rm.Empty() {
					row = rm.Get(rm.Size()-1) + 1
				}
				before := rm.Size()

				rm.Add(row)

				require.Equal(t, before+1, rm.Size())
				require.Equal(t, row, rm.Get(before))
				got, ok := rm.IndexOf(row)
				require.True(t, ok)
				require.LessOrEqual(t, got, before)
				hi = max(hi, row)
			}
		}
	}
}
