package grid

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewMutHorizontalSplitWidth(t *testing.T) {
	g := Filled(uint32(1), 4, 4)
	m := g.AsViewMut()

	split := m.SplitHorizontal(Absolute, 2)
	assert.Equal(t, 2, split.Left.Width())
	assert.Equal(t, 2, split.Right.Width())
	assert.False(t, m.Alive())
}

func TestViewMutVerticalSplitHeight(t *testing.T) {
	g := Filled(uint32(1), 4, 4)
	m := g.AsViewMut()

	split := m.SplitVertical(Absolute, 2)
	assert.Equal(t, 2, split.Above.Height())
	assert.Equal(t, 2, split.Below.Height())
}

func TestViewMutSetGet(t *testing.T) {
	g := Filled(0, 4, 4)
	m := g.AsViewMut()
	below := m.SplitVertical(Absolute, 1).Below

	require.True(t, below.Set(Relative, 2, 0, 7))
	require.True(t, below.Set(Absolute, 3, 3, 8))
	assert.False(t, below.Set(Absolute, 0, 0, 9))

	v, ok := below.Get(Absolute, 2, 1)
	require.True(t, ok)
	assert.Equal(t, 7, v)

	p := below.Ptr(Relative, 3, 2)
	require.NotNil(t, p)
	assert.Equal(t, 8, *p)
	assert.Nil(t, below.Ptr(Relative, 0, 3))
}

func TestViewMutDisjoint(t *testing.T) {
	g := Filled(0, 4, 4)
	m := g.AsViewMut()
	split := m.SplitHorizontal(Absolute, 2)
	left, right := split.Left, split.Right

	left.Fill(1)
	for _, v := range right.Cells() {
		require.Equal(t, 0, v)
	}

	require.True(t, right.Set(Relative, 0, 0, 9))
	for _, v := range left.Cells() {
		require.Equal(t, 1, v)
	}

	// One past the edge would land in the sibling; mutable views refuse it.
	assert.False(t, left.Set(Relative, 2, 0, 5))
	_, ok := left.Get(Relative, 2, 0)
	assert.False(t, ok)
	v, _ := right.Get(Relative, 0, 0)
	assert.Equal(t, 9, v)

	stacked := right.SplitVertical(Relative, 2)
	stacked.Above.Fill(3)
	for _, v := range stacked.Below.Cells() {
		require.Equal(t, 0, v)
	}
	assert.False(t, stacked.Above.Set(Relative, 0, 2, 4))

	left.Release()
	stacked.Above.Release()
	stacked.Below.Release()

	want, err := FromSlice([]int{
		1, 1, 3, 3,
		1, 1, 3, 3,
		1, 1, 0, 0,
		1, 1, 0, 0,
	}, 4, 4)
	require.NoError(t, err)
	assert.True(t, Equal(want, g))
}

func TestViewMutConsumed(t *testing.T) {
	g := Filled(0, 4, 4)
	m := g.AsViewMut()
	split := m.SplitHorizontal(Relative, 1)
	defer split.Left.Release()
	defer split.Right.Release()

	for _, use := range []func(){
		func() { m.Get(Absolute, 0, 0) },
		func() { m.Set(Absolute, 0, 0, 1) },
		func() { m.SplitVertical(Absolute, 1) },
		func() { m.Fill(1) },
	} {
		assert.True(t, errors.Is(panicErr(t, use), ErrViewInvalidated))
	}

	// Releasing a split view does nothing.
	m.Release()
	assert.True(t, errors.Is(panicErr(t, func() { g.Get(0, 0) }), ErrAliased))
}

func TestViewMutInvalidSplitKeepsView(t *testing.T) {
	g := Filled(0, 4, 4)
	m := g.AsViewMut()
	defer m.Release()

	var se *SplitError
	require.ErrorAs(t, panicErr(t, func() { m.SplitHorizontal(Absolute, 5) }), &se)
	require.ErrorAs(t, panicErr(t, func() { m.SplitVertical(Relative, -1) }), &se)
	assert.True(t, m.Alive())
	assert.True(t, m.Set(Absolute, 3, 3, 1))
}

func TestViewMutAliasing(t *testing.T) {
	g := Filled(true, 10, 10)
	m := g.AsViewMut()

	assert.True(t, errors.Is(panicErr(t, func() { g.AsViewMut() }), ErrAliased))
	assert.True(t, errors.Is(panicErr(t, func() { g.AsView() }), ErrAliased))
	assert.True(t, errors.Is(panicErr(t, func() { g.Get(0, 0) }), ErrAliased))
	assert.True(t, errors.Is(panicErr(t, func() { g.Set(0, 0, false) }), ErrAliased))
	assert.True(t, errors.Is(panicErr(t, func() { g.Map(func(x, y int) bool { return false }) }), ErrAliased))

	split := m.SplitVertical(Absolute, 5)
	split.Above.Release()
	assert.True(t, errors.Is(panicErr(t, func() { g.AsView() }), ErrAliased))

	split.Below.Release()
	view := g.AsView()
	assert.True(t, errors.Is(panicErr(t, func() { g.AsViewMut() }), ErrAliased))
	view.Release()

	m = g.AsViewMut()
	m.Release()
}

func TestViewMutUpdate(t *testing.T) {
	g := Filled(0, 3, 3)
	m := g.AsViewMut()
	right := m.SplitHorizontal(Absolute, 1).Right

	right.Update(func(v *int, x, y int) { *v = 10*y + x })
	v, _ := right.Get(Absolute, 2, 2)
	assert.Equal(t, 22, v)
	v, _ = right.Get(Relative, 0, 0)
	assert.Equal(t, 1, v)
}

func TestViewMutParallelQuadrants(t *testing.T) {
	g := Filled(-1, 64, 48)
	m := g.AsViewMut()

	rows := m.SplitVertical(Relative, 20)
	top := rows.Above.SplitHorizontal(Relative, 30)
	bottom := rows.Below.SplitHorizontal(Relative, 30)
	quadrants := []*ViewMut[int]{top.Left, top.Right, bottom.Left, bottom.Right}

	var wg sync.WaitGroup
	for i, q := range quadrants {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer q.Release()
			q.Fill(i)
		}()
	}
	wg.Wait()

	for y := 0; y != 48; y++ {
		for x := 0; x != 64; x++ {
			want := 0
			if x >= 30 {
				want++
			}
			if y >= 20 {
				want += 2
			}
			v, ok := g.Get(x, y)
			require.True(t, ok)
			require.Equalf(t, want, v, "cell (%d, %d)", x, y)
		}
	}
}
