package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned when a Source runs out before a Grid is filled.
	ErrInsufficientData = errors.New("grid: insufficient source data")

	// ErrAliased is the panic value (wrapped) raised when a borrow would alias
	// a live mutable view, or when the Grid is accessed directly while views are live.
	ErrAliased = errors.New("grid: aliased borrow")

	// ErrViewInvalidated is the panic value raised when a view is used after
	// it was split or released.
	ErrViewInvalidated = errors.New("grid: view invalidated")

	// ErrTooLarge reports dimensions whose cell count does not fit in an int.
	ErrTooLarge = errors.New("grid: dimensions too large")
)

// SplitError describes a split line that lies outside the view being split.
// It is raised as a panic value; an invalid split is a caller bug.
type SplitError struct {
	Axis  string // "x" or "y"
	Value int    // Absolute split line requested
	Start int    // First coordinate covered by the view on Axis
	End   int    // One past the last coordinate covered by the view on Axis
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("grid: invalid %s value (%d) provided for view spanning [%d, %d]",
		e.Axis, e.Value, e.Start, e.End)
}

func aliasedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAliased, fmt.Sprintf(format, args...))
}
