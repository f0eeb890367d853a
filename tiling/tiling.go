// Package tiling divides a region into worker blocks and hands out
// disjoint mutable views over them.
package tiling

import (
	"math"

	"uk.ac.bris.cs/gridspace/grid"
)

type Block struct {
	Start grid.Point // Top-left corner of block
	End   grid.Point // Bottom-right corner of block (not inclusive)
}

// Rect converts the block into a rectangle.
func (b Block) Rect() grid.Rect {
	return grid.Rect{X: b.Start.X, Y: b.Start.Y, Width: b.End.X - b.Start.X, Height: b.End.Y - b.Start.Y}
}

// Layout returns how many rows and columns of blocks threads workers get.
// The thread count is floored to the nearest composite number (from 4 up)
// so the grid can be cut into a near-square arrangement.
func Layout(threads int) (rows, cols int) {
	if threads <= 1 {
		return 1, 1
	}
	// Floor to nearest composite number
	nthread := 2
	if threads < 4 {
		nthread = threads
	} else {
		for number := 2; ; number++ {
			isPrime := true
			for factor := 2; factor != number; factor++ {
				if number%factor == 0 {
					isPrime = false
					break
				}
			}
			if !isPrime {
				nthread = number
			}
			if number == threads {
				break
			}
		}
	}
	// Factor decomposition
	factors := make([]int, 0)
	for number := nthread; number != 1; {
		for factor := 2; ; factor++ {
			if number%factor == 0 {
				number /= factor
				factors = append(factors, factor)
				break
			}
		}
	}
	// Find moderate partitioning
	i := 0
	desired := math.Sqrt(float64(nthread))
	rows, cols = 1, 1
	for ; i != len(factors); i++ {
		if float64(rows) < desired {
			rows *= factors[len(factors)-i-1]
		} else {
			break
		}
	}
	for ; i != len(factors); i++ {
		cols *= factors[len(factors)-i-1]
	}
	return rows, cols
}

// edges returns parts+1 rounded cut positions over [0, extent].
func edges(extent, parts int) []int {
	cuts := make([]int, parts+1)
	size := float64(extent) / float64(parts)
	for i := range cuts {
		cuts[i] = int(math.Round(float64(i) * size))
	}
	return cuts
}

// DivideToBlocks cuts a width x height region into blocks for threads
// workers, row by row.
func DivideToBlocks(width, height, threads int) []Block {
	rows, cols := Layout(threads)
	xs := edges(width, cols)
	ys := edges(height, rows)

	blocks := make([]Block, rows*cols)
	for y := 0; y != rows; y++ {
		for x := 0; x != cols; x++ {
			blocks[y*cols+x] = Block{
				Start: grid.Point{X: xs[x], Y: ys[y]},
				End:   grid.Point{X: xs[x+1], Y: ys[y+1]},
			}
		}
	}
	return blocks
}

// Assign groups items so that each of workers gets a contiguous run.
// With fewer items than workers every item gets its own group.
func Assign[B any](items []B, workers int) [][]B {
	if workers < 1 {
		workers = 1
	}
	if len(items) <= workers {
		// Blocks not enough to be assigned to every worker
		groups := make([][]B, len(items))
		for i := range items {
			groups[i] = items[i : i+1]
		}
		return groups
	}
	// At least one worker gets multiple blocks
	groups := make([][]B, workers)
	avg := float64(len(items)) / float64(workers)
	for i := 0; i != workers; i++ {
		start := int(math.Round(float64(i) * avg))
		end := int(math.Round(float64(i+1) * avg))
		groups[i] = items[start:end]
	}
	return groups
}

// Split consumes view and returns one mutable view per block of
// DivideToBlocks(view.Width(), view.Height(), threads), in the same order.
// The views are disjoint and may be used from separate goroutines; each
// must be released by its user.
func Split[T any](view *grid.ViewMut[T], threads int) []*grid.ViewMut[T] {
	rows, cols := Layout(threads)
	xs := edges(view.Width(), cols)
	ys := edges(view.Height(), rows)

	tiles := make([]*grid.ViewMut[T], 0, rows*cols)
	rest := view
	for y := 1; y <= rows; y++ {
		row := rest
		if y != rows {
			split := rest.SplitVertical(grid.Relative, ys[y]-ys[y-1])
			row, rest = split.Above, split.Below
		}
		for x := 1; x <= cols; x++ {
			tile := row
			if x != cols {
				split := row.SplitHorizontal(grid.Relative, xs[x]-xs[x-1])
				tile, row = split.Left, split.Right
			}
			tiles = append(tiles, tile)
		}
	}
	return tiles
}
