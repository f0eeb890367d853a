package grid

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewIter(t *testing.T) {
	g := Generate(func(x, y int) uint32 { return 10*uint32(y) + uint32(x) }, 10, 10)
	view := g.AsView()
	defer view.Release()

	want := make([]uint32, 100)
	for i := range want {
		want[i] = uint32(i)
	}
	if diff := cmp.Diff(want, slices.Collect(view.All())); diff != "" {
		t.Errorf("iteration order mismatch (-want +got):\n%s", diff)
	}
}

func TestViewIterRestartable(t *testing.T) {
	g := Generate(func(x, y int) int { return 3*y + x }, 3, 2)
	view := g.AsView()
	defer view.Release()

	it := view.Iter()
	var first []int
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		first = append(first, v)
	}
	_, ok := it.Next()
	assert.False(t, ok)

	it.Reset()
	var second []int
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		second = append(second, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, first, slices.Collect(view.All()))
}

func TestViewIterStaysInsideView(t *testing.T) {
	g := Generate(func(x, y int) int { return 4*y + x }, 4, 4)
	view := g.AsView()
	defer view.Release()

	split := view.SplitVertical(Absolute, 2)
	inner := split.Above.SplitHorizontal(Absolute, 1).Right

	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, slices.Collect(inner.All()))
}

func TestViewHorizontalSplitWidth(t *testing.T) {
	g := Filled(uint32(1), 4, 4)
	view := g.AsView()

	split := view.SplitHorizontal(Absolute, 2)
	assert.Equal(t, 2, split.Left.Width())
	assert.Equal(t, 2, split.Right.Width())
	assert.Equal(t, 4, split.Left.Height())
}

func TestViewVerticalSplitHeight(t *testing.T) {
	g := Filled(uint32(1), 4, 4)
	view := g.AsView()

	split := view.SplitVertical(Absolute, 2)
	assert.Equal(t, 2, split.Above.Height())
	assert.Equal(t, 2, split.Below.Height())
	assert.Equal(t, 4, split.Below.Width())
}

func TestViewPartition(t *testing.T) {
	g := Generate(func(x, _ int) bool { return x < 10 }, 20, 20)
	view := g.AsView()

	split := view.SplitHorizontal(Absolute, 10)

	for v := range split.Left.All() {
		require.True(t, v)
	}
	for v := range split.Right.All() {
		require.False(t, v)
	}
	assert.Len(t, slices.Collect(split.Left.All()), 200)
	assert.Len(t, slices.Collect(split.Right.All()), 200)
}

func TestViewMaterializeRoundTrip(t *testing.T) {
	original := Generate(func(x, y int) Point { return Point{X: x, Y: y} }, 100, 100)
	cloned := original.Clone()

	view := original.AsView()
	roundTrip := view.Materialize()
	view.Release()

	assert.True(t, Equal(original, cloned))
	assert.True(t, Equal(original, roundTrip))

	// The copy is independent of the parent.
	roundTrip.Set(0, 0, Point{X: -1, Y: -1})
	v, _ := original.Get(0, 0)
	assert.Equal(t, Point{}, v)
}

func TestViewMaterializeSubView(t *testing.T) {
	g := Generate(func(x, y int) int { return 10*y + x }, 5, 3)
	view := g.AsView()
	defer view.Release()

	right := view.SplitHorizontal(Relative, 3).Right
	sub := right.Materialize()
	require.Equal(t, 2, sub.Width())
	require.Equal(t, 3, sub.Height())

	want, err := FromSlice([]int{3, 4, 13, 14, 23, 24}, 2, 3)
	require.NoError(t, err)
	assert.True(t, Equal(want, sub))
}

func TestViewNestedSplitWithOrigin(t *testing.T) {
	g := Generate(func(x, _ int) int { return x }, 8, 2)
	view := g.AsView()

	right := view.SplitHorizontal(Absolute, 4).Right
	split := right.SplitHorizontal(Absolute, 6)
	assert.Equal(t, Rect{X: 4, Y: 0, Width: 2, Height: 2}, split.Left.Rect())
	assert.Equal(t, Rect{X: 6, Y: 0, Width: 2, Height: 2}, split.Right.Rect())

	split = right.SplitHorizontal(Relative, 1)
	assert.Equal(t, []int{4, 4}, slices.Collect(split.Left.All()))
	assert.Equal(t, []int{5, 6, 7, 5, 6, 7}, slices.Collect(split.Right.All()))
}

func TestViewInvalidSplitPanics(t *testing.T) {
	g := Filled(0, 4, 4)
	view := g.AsView()
	defer view.Release()

	var se *SplitError
	require.ErrorAs(t, panicErr(t, func() { view.SplitHorizontal(Absolute, 5) }), &se)
	require.ErrorAs(t, panicErr(t, func() { view.SplitVertical(Relative, 5) }), &se)

	right := view.SplitHorizontal(Absolute, 2).Right
	require.ErrorAs(t, panicErr(t, func() { right.SplitHorizontal(Absolute, 1) }), &se)

	// Edges are legal and produce an empty half.
	split := view.SplitHorizontal(Relative, 0)
	assert.Equal(t, 0, split.Left.Width())
	assert.Equal(t, 4, split.Right.Width())
	assert.Empty(t, slices.Collect(split.Left.All()))
}

func TestViewGet(t *testing.T) {
	g := Generate(func(x, y int) int { return 10*y + x }, 4, 4)
	view := g.AsView()
	defer view.Release()

	below := view.SplitVertical(Absolute, 2).Below

	v, ok := below.Get(Relative, 1, 0)
	require.True(t, ok)
	assert.Equal(t, 21, v)

	v, ok = below.Get(Absolute, 1, 2)
	require.True(t, ok)
	assert.Equal(t, 21, v)

	_, ok = below.Get(Absolute, 1, 1)
	assert.False(t, ok)

	// Relative lookups one past the edge fall through to the grid check.
	_, ok = below.Get(Relative, 0, 2)
	assert.False(t, ok)
	_, ok = below.Get(Relative, 4, 0)
	assert.False(t, ok)

	left := view.SplitHorizontal(Absolute, 2).Left
	v, ok = left.Get(Relative, 2, 0)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestViewCells(t *testing.T) {
	g := Generate(func(x, y int) int { return 10*y + x }, 3, 3)
	view := g.AsView()
	defer view.Release()

	inner := view.SplitHorizontal(Absolute, 1).Right.SplitVertical(Absolute, 2).Below

	var points []Point
	var values []int
	for p, v := range inner.Cells() {
		points = append(points, p)
		values = append(values, v)
	}
	assert.Equal(t, []Point{{1, 2}, {2, 2}}, points)
	assert.Equal(t, []int{21, 22}, values)
}

func TestViewRelease(t *testing.T) {
	g := Filled(1, 2, 2)
	view := g.AsView()
	split := view.SplitHorizontal(Absolute, 1)

	// Direct reads are fine while views are live, writes are not.
	_, ok := g.Get(0, 0)
	assert.True(t, ok)
	assert.True(t, errors.Is(panicErr(t, func() { g.Set(0, 0, 2) }), ErrAliased))

	view.Release()
	view.Release()
	assert.True(t, errors.Is(panicErr(t, func() { view.Get(Absolute, 0, 0) }), ErrViewInvalidated))

	// The halves still hold borrows.
	assert.True(t, errors.Is(panicErr(t, func() { g.AsViewMut() }), ErrAliased))

	split.Left.Release()
	split.Right.Release()
	assert.True(t, g.Set(0, 0, 2))

	m := g.AsViewMut()
	m.Release()
}

func TestViewConcurrentReadsThenRelease(t *testing.T) {
	g := Generate(func(x, y int) int { return y*32 + x }, 32, 32)
	view := g.AsView()

	sums := make([]int, 8)
	var wg sync.WaitGroup
	for i := range sums {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range view.All() {
				sums[i] += v
			}
		}()
	}
	wg.Wait()
	view.Release()

	for _, sum := range sums {
		assert.Equal(t, 1023*1024/2, sum)
	}
	err := panicErr(t, func() { view.Get(Absolute, 0, 0) })
	assert.True(t, errors.Is(err, ErrViewInvalidated))
	assert.True(t, g.Set(0, 0, 1))
}
