package life

import (
	"uk.ac.bris.cs/gridspace/grid"
)

// Cell values, matching the PGM pixel encoding.
const (
	Dead  uint8 = 0
	Alive uint8 = 255
)

// Get positions of the eight surrounding cells on a torus
func surrounding(width, height int, cell grid.Point) [8]grid.Point {
	if cell.X == 0 || cell.Y == 0 || cell.X == width-1 || cell.Y == height-1 {
		return [8]grid.Point{
			{X: (cell.X - 1 + width) % width, Y: (cell.Y - 1 + height) % height},
			{X: cell.X, Y: (cell.Y - 1 + height) % height},
			{X: (cell.X + 1) % width, Y: (cell.Y - 1 + height) % height},
			{X: (cell.X - 1 + width) % width, Y: cell.Y},
			{X: (cell.X + 1) % width, Y: cell.Y},
			{X: (cell.X - 1 + width) % width, Y: (cell.Y + 1) % height},
			{X: cell.X, Y: (cell.Y + 1) % height},
			{X: (cell.X + 1) % width, Y: (cell.Y + 1) % height},
		}
	}
	return [8]grid.Point{
		{X: cell.X - 1, Y: cell.Y - 1},
		{X: cell.X, Y: cell.Y - 1},
		{X: cell.X + 1, Y: cell.Y - 1},
		{X: cell.X - 1, Y: cell.Y},
		{X: cell.X + 1, Y: cell.Y},
		{X: cell.X - 1, Y: cell.Y + 1},
		{X: cell.X, Y: cell.Y + 1},
		{X: cell.X + 1, Y: cell.Y + 1},
	}
}

// AliveCells lists the alive cells of a view in row-major order.
func AliveCells(view *grid.View[uint8]) []grid.Point {
	cells := make([]grid.Point, 0)
	for cell, v := range view.Cells() {
		if v != Dead {
			cells = append(cells, cell)
		}
	}
	return cells
}

// evolve writes the next state of every cell of tile, reading neighbours
// from current. Flipped cells are appended to flipped.
// Returns the alive cell count difference.
func evolve(current *grid.View[uint8], tile *grid.ViewMut[uint8], flipped *[]grid.Point) int {
	width, height := current.Width(), current.Height()
	countDiff := 0
	tile.Update(func(next *uint8, x, y int) {
		cell := grid.Point{X: x, Y: y}
		count := 0
		for _, neighbour := range surrounding(width, height, cell) {
			if v, _ := current.Get(grid.Absolute, neighbour.X, neighbour.Y); v != Dead {
				count++
			}
		}
		was, _ := current.Get(grid.Absolute, x, y)
		switch {
		case was == Dead && count == 3:
			// Flipping
			*next = Alive
			*flipped = append(*flipped, cell)
			countDiff++
		case was != Dead && (count < 2 || count > 3):
			// Flipping
			*next = Dead
			*flipped = append(*flipped, cell)
			countDiff--
		default:
			// Copying
			*next = was
		}
	})
	return countDiff
}
