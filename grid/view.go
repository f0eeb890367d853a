package grid

import (
	"iter"
	"sync/atomic"
)

// View is a read-only window onto a rectangle of a Grid.
//
// Views share their Grid: any number may be live, and while one is live the
// Grid cannot be written to or mutably borrowed. Release returns the borrow.
// A View may be read from several goroutines at once; a read racing with
// Release either completes or panics with ErrViewInvalidated.
type View[T any] struct {
	parent   *Grid[T]
	rect     Rect
	released atomic.Bool
}

func (v *View[T]) alive() {
	if v.released.Load() {
		panic(ErrViewInvalidated)
	}
}

// Width is the number of columns covered by the view.
func (v *View[T]) Width() int {
	return v.rect.Width
}

// Height is the number of rows covered by the view.
func (v *View[T]) Height() int {
	return v.rect.Height
}

// Rect is the area covered by the view in the parent's coordinates.
func (v *View[T]) Rect() Rect {
	return v.rect
}

// Get returns the value at (x, y) using the given positioning mode.
// If the position resolves outside the view or the grid false is returned.
func (v *View[T]) Get(mode Positioning, x, y int) (T, bool) {
	v.alive()
	p, ok := v.rect.Resolve(mode, x, y)
	if !ok {
		var zero T
		return zero, false
	}
	return v.parent.at(p.X, p.Y)
}

// Iter returns an iterator that reads through the view row by row.
func (v *View[T]) Iter() *Iterator[T] {
	v.alive()
	return &Iterator[T]{view: v}
}

// All yields every value in the view in row-major order.
func (v *View[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := v.Iter()
		for val, ok := it.Next(); ok; val, ok = it.Next() {
			if !yield(val) {
				return
			}
		}
	}
}

// Cells yields every absolute position in the view with its value, in
// row-major order.
func (v *View[T]) Cells() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		v.alive()
		for y := v.rect.Y; y != v.rect.Y+v.rect.Height; y++ {
			for x := v.rect.X; x != v.rect.X+v.rect.Width; x++ {
				val, _ := v.parent.at(x, y)
				if !yield(Point{X: x, Y: y}, val) {
					return
				}
			}
		}
	}
}

// Materialize copies the view into a new Grid that does not depend on the
// parent. Elements are copied by assignment.
func (v *View[T]) Materialize() *Grid[T] {
	g, err := FromSource[T](v.Iter(), v.rect.Width, v.rect.Height)
	if err != nil {
		// The view lies inside its parent, so the iterator cannot run short.
		panic(err)
	}
	return g
}

// SplitHorizontal splits the view into two new ones at column x.
// The left view contains the points with x less than the split line, the
// right view the points with x greater than or equal to it.
// The receiver stays usable. A split line outside the view panics with a
// *SplitError.
func (v *View[T]) SplitHorizontal(mode Positioning, x int) HorizontalSplit[*View[T]] {
	v.alive()
	parts := v.rect.splitHorizontal(mode, x)
	v.parent.borrow.addShared(2)
	return HorizontalSplit[*View[T]]{
		Left:  &View[T]{parent: v.parent, rect: parts.Left},
		Right: &View[T]{parent: v.parent, rect: parts.Right},
	}
}

// SplitVertical splits the view into two new ones at row y.
// The above view contains the points with y less than the split line, the
// below view the points with y greater than or equal to it.
func (v *View[T]) SplitVertical(mode Positioning, y int) VerticalSplit[*View[T]] {
	v.alive()
	parts := v.rect.splitVertical(mode, y)
	v.parent.borrow.addShared(2)
	return VerticalSplit[*View[T]]{
		Above: &View[T]{parent: v.parent, rect: parts.Above},
		Below: &View[T]{parent: v.parent, rect: parts.Below},
	}
}

// Release gives the borrow back to the Grid. Further use of the view
// panics. Releasing twice is a no-op.
func (v *View[T]) Release() {
	if v.released.Swap(true) {
		return
	}
	v.parent.borrow.releaseShared()
}

// Iterator reads through a View lexicographically: x varies fastest, then y.
// It implements Source so a View can feed FromSource.
type Iterator[T any] struct {
	view *View[T]
	x, y int
}

func (it *Iterator[T]) Next() (T, bool) {
	var zero T
	if it.view.rect.Width == 0 || it.y >= it.view.rect.Height {
		return zero, false
	}

	result, ok := it.view.Get(Relative, it.x, it.y)

	if it.x == it.view.rect.Width-1 {
		it.x = 0
		it.y++
	} else {
		it.x++
	}
	return result, ok
}

// Reset restarts the iterator from the first cell.
func (it *Iterator[T]) Reset() {
	it.x, it.y = 0, 0
}
