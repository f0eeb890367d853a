// Package grid provides a dense 2D container and a view layer over it.
//
// A Grid owns a single row-major block of width*height elements addressed
// by (x, y). Views are windows onto a rectangle of a Grid:
//
//   - View is read-only. Any number of Views may be live at once and they
//     can be split freely.
//   - ViewMut can write. Splitting a ViewMut consumes it and yields two
//     ViewMuts over disjoint rectangles, which may then be handed to
//     independent goroutines.
//
// Go has no borrow checker, so every Grid carries a borrow state that is
// checked whenever a view is created or the Grid is touched directly.
// Breaking the aliasing rules panics with ErrAliased; using a view after it
// was split or released panics with ErrViewInvalidated.
//
// Coordinates are interpreted through a Positioning mode. Absolute
// coordinates address the parent Grid directly, Relative coordinates treat
// the view's origin as (0, 0).
package grid
