package grid

import (
	"fmt"
	"math"
)

// Grid represents a rectangular 2 dimensional array of contiguous memory.
// Cell (x, y) lives at index y*width + x.
//
// A Grid must not be copied after first use; pass *Grid.
type Grid[T any] struct {
	data   []T
	width  int
	height int

	borrow borrowState
}

// Area returns width*height, or false if either dimension is negative or
// the product overflows an int.
func Area(width, height int) (int, bool) {
	if width < 0 || height < 0 {
		return 0, false
	}
	if width != 0 && height > math.MaxInt/width {
		return 0, false
	}
	return width * height, true
}

func checkDimensions(width, height int) {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", width, height))
	}
	if _, ok := Area(width, height); !ok {
		panic(fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height))
	}
}

// Filled creates a grid with every cell set to value.
func Filled[T any](value T, width, height int) *Grid[T] {
	checkDimensions(width, height)
	data := make([]T, width*height)
	for i := range data {
		data[i] = value
	}
	return &Grid[T]{data: data, width: width, height: height}
}

// Generate creates a grid by calling f once per cell, row by row
// (y outer, x inner).
func Generate[T any](f func(x, y int) T, width, height int) *Grid[T] {
	checkDimensions(width, height)
	data := make([]T, width*height)
	for y := 0; y != height; y++ {
		for x := 0; x != width; x++ {
			data[y*width+x] = f(x, y)
		}
	}
	return &Grid[T]{data: data, width: width, height: height}
}

// FromSource consumes exactly width*height values from src in row-major
// order. Values beyond that are left in src. If src runs out early the
// returned error wraps ErrInsufficientData.
func FromSource[T any](src Source[T], width, height int) (*Grid[T], error) {
	checkDimensions(width, height)
	data := make([]T, width*height)
	for i := range data {
		v, ok := src.Next()
		if !ok {
			return nil, fmt.Errorf("%w: got %d of %d values for %dx%d grid",
				ErrInsufficientData, i, len(data), width, height)
		}
		data[i] = v
	}
	return &Grid[T]{data: data, width: width, height: height}, nil
}

// FromSlice is FromSource over a slice.
func FromSlice[T any](items []T, width, height int) (*Grid[T], error) {
	checkDimensions(width, height)
	if n, _ := Area(width, height); len(items) < n {
		return nil, fmt.Errorf("%w: got %d of %d values for %dx%d grid",
			ErrInsufficientData, len(items), n, width, height)
	}
	return FromSource[T](FromSliceSource(items), width, height)
}

func (g *Grid[T]) Width() int {
	return g.width
}

func (g *Grid[T]) Height() int {
	return g.height
}

// Bounds returns the rectangle covering the whole grid.
func (g *Grid[T]) Bounds() Rect {
	return Rect{Width: g.width, Height: g.height}
}

func (g *Grid[T]) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, false
	}
	return y*g.width + x, true
}

// at reads a cell without consulting the borrow state. Views use it.
func (g *Grid[T]) at(x, y int) (T, bool) {
	i, ok := g.index(x, y)
	if !ok {
		var zero T
		return zero, false
	}
	return g.data[i], true
}

func (g *Grid[T]) ptr(x, y int) *T {
	i, ok := g.index(x, y)
	if !ok {
		return nil
	}
	return &g.data[i]
}

// Get returns the value at an absolute position.
// If the position is outside the grid false is returned.
func (g *Grid[T]) Get(x, y int) (T, bool) {
	g.borrow.checkRead()
	return g.at(x, y)
}

// Ptr returns a pointer to the cell at an absolute position, or nil if the
// position is outside the grid. The pointer must not be kept while a view
// of the grid is live.
func (g *Grid[T]) Ptr(x, y int) *T {
	g.borrow.checkWrite()
	return g.ptr(x, y)
}

// Set overwrites the cell at an absolute position.
// If the position is outside the grid false is returned and nothing changes.
func (g *Grid[T]) Set(x, y int, value T) bool {
	g.borrow.checkWrite()
	p := g.ptr(x, y)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Map overwrites every cell with f(x, y).
func (g *Grid[T]) Map(f func(x, y int) T) {
	g.borrow.checkWrite()
	for i := range g.data {
		g.data[i] = f(i%g.width, i/g.width)
	}
}

// Update calls f with a pointer to every cell and its position.
func (g *Grid[T]) Update(f func(v *T, x, y int)) {
	g.borrow.checkWrite()
	for i := range g.data {
		f(&g.data[i], i%g.width, i/g.width)
	}
}

// Clone returns a copy of the grid with no live views.
// Elements are copied by assignment.
func (g *Grid[T]) Clone() *Grid[T] {
	g.borrow.checkRead()
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{data: data, width: g.width, height: g.height}
}

// AsView creates a read-only view of the whole grid.
// It panics if a mutable view of the grid is live.
func (g *Grid[T]) AsView() *View[T] {
	g.borrow.acquireShared()
	return &View[T]{parent: g, rect: g.Bounds()}
}

// AsViewMut creates a mutable view of the whole grid.
// Two mutable views cannot coexist; it panics if any view of the grid is live.
func (g *Grid[T]) AsViewMut() *ViewMut[T] {
	g.borrow.acquireExclusive()
	return &ViewMut[T]{parent: g, rect: g.Bounds()}
}

// Equal reports whether two grids have the same dimensions and contents.
func Equal[T comparable](a, b *Grid[T]) bool {
	a.borrow.checkRead()
	b.borrow.checkRead()
	if a.width != b.width || a.height != b.height {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

func (g *Grid[T]) String() string {
	return fmt.Sprintf("Grid[%dx%d]", g.width, g.height)
}
