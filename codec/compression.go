// Package codec packs uint8 boards and cell lists into compact byte forms
// and wraps them in a zstd-compressed snapshot container.
package codec

import (
	"errors"
	"fmt"
	"math"

	"uk.ac.bris.cs/gridspace/grid"
)

// ErrCorrupt is returned when encoded data cannot be decoded.
var ErrCorrupt = errors.New("codec: corrupt data")

// Get the minimum number of bytes to represent the whole range of width and height
func SizeOfInt(width, height int) int {
	sizeInt := 1
	for largest := 0x7F; largest < width || largest < height; largest = (largest << 8) | 0xFF {
		sizeInt++
	}
	return sizeInt
}

// PackBits stores one bit per cell of the view, row by row. Non-zero
// cells are set.
func PackBits(view *grid.View[uint8]) []byte {
	packed := make([]byte, (view.Width()*view.Height()+7)/8)
	i := 0
	for v := range view.All() {
		if v != 0 {
			packed[i/8] |= 1 << (i % 8)
		}
		i++
	}
	return packed
}

// UnpackBits rebuilds a board from PackBits output; set bits become on.
func UnpackBits(packed []byte, width, height int, on uint8) (*grid.Grid[uint8], error) {
	area, ok := grid.Area(width, height)
	if !ok || area > math.MaxInt-7 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrCorrupt, width, height)
	}
	if len(packed) < (area+7)/8 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d cells", ErrCorrupt, len(packed), width, height)
	}
	return grid.Generate(func(x, y int) uint8 {
		i := y*width + x
		if packed[i/8]&(1<<(i%8)) != 0 {
			return on
		}
		return 0
	}, width, height), nil
}

// EncodeCells writes each cell as sizeInt little-endian bytes of X
// followed by sizeInt bytes of Y.
func EncodeCells(cells []grid.Point, sizeInt int) []byte {
	dest := make([]byte, len(cells)*sizeInt*2)
	view := dest
	for _, cell := range cells {
		for j := 0; j != sizeInt; j++ {
			view[0] = byte(cell.X >> (j << 3))
			view = view[1:]
		}
		for j := 0; j != sizeInt; j++ {
			view[0] = byte(cell.Y >> (j << 3))
			view = view[1:]
		}
	}
	return dest
}

// DecodeCells reverses EncodeCells.
func DecodeCells(data []byte, sizeInt int) ([]grid.Point, error) {
	if sizeInt < 1 || len(data)%(sizeInt*2) != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte cells", ErrCorrupt, len(data), sizeInt*2)
	}
	cells := make([]grid.Point, len(data)/(sizeInt*2))
	index := 0
	for i := 0; i != len(data); i += sizeInt * 2 {
		for j := 0; j != sizeInt; j++ {
			cells[index].X |= int(data[i+j]) << (j << 3)
		}
		for j := 0; j != sizeInt; j++ {
			cells[index].Y |= int(data[i+sizeInt+j]) << (j << 3)
		}
		index++
	}
	return cells, nil
}
