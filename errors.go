package rowmap

import (
	"errors"
	"fmt"
)

var (
	// ErrContractViolation matches (via errors.Is) every error a RowMap
	// panics with. These indicate caller bugs, not run-time conditions.
	ErrContractViolation = errors.New("rowmap: contract violation")
)

// ErrPositionOutOfRange reports a position outside [0, Size).
type ErrPositionOutOfRange struct {
	Position uint32
	Size     uint32
}

func (e *ErrPositionOutOfRange) Error() string {
	return fmt.Sprintf("rowmap: position %d out of range [0, %d)", e.Position, e.Size)
}

// Is reports whether target is ErrContractViolation.
func (e *ErrPositionOutOfRange) Is(target error) bool { return target == ErrContractViolation }

// ErrInvalidPicker reports a picker value that is not a valid position in
// the base RowMap of SelectRows.
//
// The position error can be accessed via errors.Unwrap.
type ErrInvalidPicker struct {
	// Index is the picker position holding the bad value.
	Index uint32
	cause *ErrPositionOutOfRange
}

func (e *ErrInvalidPicker) Error() string {
	return fmt.Sprintf("rowmap: picker index %d: %v", e.Index, e.cause)
}

func (e *ErrInvalidPicker) Unwrap() error { return e.cause }

// Is reports whether target is ErrContractViolation.
func (e *ErrInvalidPicker) Is(target error) bool { return target == ErrContractViolation }

// ErrUnsupportedAppend reports an Add that would have to reorder positions.
// Bitmap backings only accept rows above their current maximum.
type ErrUnsupportedAppend struct {
	Kind Kind
	Row  RowID
	Max  RowID
}

func (e *ErrUnsupportedAppend) Error() string {
	return fmt.Sprintf("rowmap: cannot append row %d to %s backing with maximum row %d", e.Row, e.Kind, e.Max)
}

// Is reports whether target is ErrContractViolation.
func (e *ErrUnsupportedAppend) Is(target error) bool { return target == ErrContractViolation }

// ErrInvalidRange reports a range whose start lies after its end.
type ErrInvalidRange struct {
	Start RowID
	End   RowID
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("rowmap: invalid range [%d, %d)", e.Start, e.End)
}

// Is reports whether target is ErrContractViolation.
func (e *ErrInvalidRange) Is(target error) bool { return target == ErrContractViolation }
