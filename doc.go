// Package rowmap provides RowMap, an ordered selection of table rows.
//
// A RowMap maps logical positions [0, Size()) to row numbers without
// touching the column storage those row numbers index into. Filtering,
// sorting and joining compose by building a new RowMap over a previous one
// instead of materializing columns.
//
// # Backings
//
// Every RowMap is backed by exactly one of three representations:
//
//	KindRange      [start, end), ascending and contiguous       O(1) space
//	KindBitmap     one bit per candidate row plus a rank index  O(universe) space
//	KindIndexList  explicit rows, any order, duplicates allowed O(size) space
//
// All operations behave identically whichever backing is in use. A RowMap
// only moves to a more general backing when an operation's result cannot
// be expressed in the current one.
//
// # Quick Start
//
//	rm := rowmap.FromRange(30, 47)
//	rm.Size()         // 17
//	rm.Get(16)        // 46
//	rm.IndexOf(30)    // 0, true
//
//	picker := rowmap.FromIndexList([]rowmap.RowID{3, 2, 0})
//	sorted := rm.SelectRows(picker) // 33, 32, 30
//
//	rm.RemoveIf(func(r rowmap.RowID) bool { return r%2 == 0 })
//
// # Contracts
//
// Get with a position outside [0, Size()) and SelectRows with a picker that
// yields such a position are programmer errors and panic with a typed
// error (see ErrPositionOutOfRange, ErrInvalidPicker). IndexOf for an
// absent row is an ordinary result and reports false.
//
// Add on a bitmap-backed RowMap only supports rows above the current
// maximum. Appending a row at or below it would renumber existing
// positions, so it panics with ErrUnsupportedAppend.
//
// # Ownership and Concurrency
//
// A RowMap owns its storage and is handled as a *RowMap. Every constructor,
// SelectRows and Intersect return a fresh RowMap that shares nothing with
// its operands; Clone returns an independent copy. Read-only methods may
// run concurrently; Add and RemoveIf require exclusive access.
package rowmap
