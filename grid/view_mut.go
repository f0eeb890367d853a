package grid

import "iter"

// ViewMut is a mutable window onto a rectangle of a Grid.
//
// While any ViewMut of a Grid is live no other view can be created and the
// Grid cannot be accessed directly. Splitting consumes the view and yields
// two views over disjoint rectangles, so the pair can be handed to separate
// goroutines. A single ViewMut must not be shared between goroutines.
//
// Reads and writes are confined to the view's rectangle in both
// positioning modes.
type ViewMut[T any] struct {
	parent   *Grid[T]
	rect     Rect
	consumed bool
}

func (m *ViewMut[T]) alive() {
	if m.consumed {
		panic(ErrViewInvalidated)
	}
}

func (m *ViewMut[T]) Width() int {
	return m.rect.Width
}

func (m *ViewMut[T]) Height() int {
	return m.rect.Height
}

// Rect is the area covered by the view in the parent's coordinates.
func (m *ViewMut[T]) Rect() Rect {
	return m.rect
}

// Alive reports whether the view can still be used.
func (m *ViewMut[T]) Alive() bool {
	return !m.consumed
}

func (m *ViewMut[T]) resolve(mode Positioning, x, y int) (Point, bool) {
	p, ok := m.rect.Resolve(mode, x, y)
	if !ok || !m.rect.Contains(p) {
		return Point{}, false
	}
	return p, true
}

// Get returns the value at (x, y) using the given positioning mode.
// If the position is outside the view false is returned.
func (m *ViewMut[T]) Get(mode Positioning, x, y int) (T, bool) {
	m.alive()
	p, ok := m.resolve(mode, x, y)
	if !ok {
		var zero T
		return zero, false
	}
	return m.parent.at(p.X, p.Y)
}

// Ptr returns a pointer to the cell at (x, y), or nil if the position is
// outside the view. The pointer must not outlive the view.
func (m *ViewMut[T]) Ptr(mode Positioning, x, y int) *T {
	m.alive()
	p, ok := m.resolve(mode, x, y)
	if !ok {
		return nil
	}
	return m.parent.ptr(p.X, p.Y)
}

// Set overwrites the value at (x, y) using the given positioning mode.
// If the position is outside the view false is returned and nothing changes.
func (m *ViewMut[T]) Set(mode Positioning, x, y int, value T) bool {
	p := m.Ptr(mode, x, y)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Fill sets every cell of the view to value.
func (m *ViewMut[T]) Fill(value T) {
	m.Update(func(v *T, _, _ int) { *v = value })
}

// Update calls f with a pointer to every cell of the view and its absolute
// position, row by row.
func (m *ViewMut[T]) Update(f func(v *T, x, y int)) {
	m.alive()
	for y := m.rect.Y; y != m.rect.Y+m.rect.Height; y++ {
		for x := m.rect.X; x != m.rect.X+m.rect.Width; x++ {
			f(m.parent.ptr(x, y), x, y)
		}
	}
}

// Cells yields every absolute position in the view with its value, in
// row-major order.
func (m *ViewMut[T]) Cells() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		m.alive()
		for y := m.rect.Y; y != m.rect.Y+m.rect.Height; y++ {
			for x := m.rect.X; x != m.rect.X+m.rect.Width; x++ {
				val, _ := m.parent.at(x, y)
				if !yield(Point{X: x, Y: y}, val) {
					return
				}
			}
		}
	}
}

// SplitHorizontal consumes the view and splits it into two at column x.
// The left view contains the points with x less than the split line, the
// right view the points with x greater than or equal to it. Each half holds
// write access to its own rectangle only.
// A split line outside the view panics with a *SplitError and leaves the
// receiver usable.
func (m *ViewMut[T]) SplitHorizontal(mode Positioning, x int) HorizontalSplit[*ViewMut[T]] {
	m.alive()
	parts := m.rect.splitHorizontal(mode, x)
	m.consumed = true
	m.parent.borrow.fork()
	return HorizontalSplit[*ViewMut[T]]{
		Left:  &ViewMut[T]{parent: m.parent, rect: parts.Left},
		Right: &ViewMut[T]{parent: m.parent, rect: parts.Right},
	}
}

// SplitVertical consumes the view and splits it into two at row y.
// The above view contains the points with y less than the split line, the
// below view the points with y greater than or equal to it.
func (m *ViewMut[T]) SplitVertical(mode Positioning, y int) VerticalSplit[*ViewMut[T]] {
	m.alive()
	parts := m.rect.splitVertical(mode, y)
	m.consumed = true
	m.parent.borrow.fork()
	return VerticalSplit[*ViewMut[T]]{
		Above: &ViewMut[T]{parent: m.parent, rect: parts.Above},
		Below: &ViewMut[T]{parent: m.parent, rect: parts.Below},
	}
}

// Release relinquishes the view. Once every view descended from the root
// is released the Grid can be used again. Releasing a consumed view is a
// no-op, so `defer m.Release()` is safe even if m gets split.
func (m *ViewMut[T]) Release() {
	if m.consumed {
		return
	}
	m.consumed = true
	m.parent.borrow.releaseExclusive()
}
