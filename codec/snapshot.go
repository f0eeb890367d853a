package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"

	"uk.ac.bris.cs/gridspace/grid"
)

const snapshotMagic = "GSNP"

// Payload layouts. The smaller of the two is written.
const (
	layoutBits  byte = 1 // PackBits of every cell
	layoutCells byte = 2 // EncodeCells of the set cells
)

// WriteSnapshot writes the view as a zstd-compressed snapshot:
// magic, uvarint width and height, a layout byte and the payload.
func WriteSnapshot(w io.Writer, view *grid.View[uint8]) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	width, height := view.Width(), view.Height()
	header := make([]byte, 0, len(snapshotMagic)+2*binary.MaxVarintLen64+1)
	header = append(header, snapshotMagic...)
	header = binary.AppendUvarint(header, uint64(width))
	header = binary.AppendUvarint(header, uint64(height))

	sizeInt := SizeOfInt(width, height)
	var set []grid.Point
	for cell, v := range view.Cells() {
		if v != 0 {
			// Coordinates relative to the view.
			set = append(set, grid.Point{X: cell.X - view.Rect().X, Y: cell.Y - view.Rect().Y})
		}
	}

	var payload []byte
	if bitsSize := (width*height + 7) / 8; bitsSize <= len(set)*sizeInt*2 {
		header = append(header, layoutBits)
		payload = PackBits(view)
	} else {
		header = append(header, layoutCells)
		payload = EncodeCells(set, sizeInt)
	}

	if _, err := enc.Write(header); err != nil {
		enc.Close()
		return err
	}
	if _, err := enc.Write(payload); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot decodes a snapshot. Set cells come back as on.
func ReadSnapshot(r io.Reader, on uint8) (*grid.Grid[uint8], error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(br, magic); err != nil || string(magic) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad snapshot header", ErrCorrupt)
	}
	width, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("%w: width: %w", ErrCorrupt, err)
	}
	height, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("%w: height: %w", ErrCorrupt, err)
	}
	layout, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: layout: %w", ErrCorrupt, err)
	}
	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrCorrupt, err)
	}

	if width > math.MaxInt || height > math.MaxInt {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrCorrupt, width, height)
	}
	w, h := int(width), int(height)
	if _, ok := grid.Area(w, h); !ok {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrCorrupt, w, h)
	}
	switch layout {
	case layoutBits:
		return UnpackBits(payload, w, h, on)
	case layoutCells:
		cells, err := DecodeCells(payload, SizeOfInt(w, h))
		if err != nil {
			return nil, err
		}
		g := grid.Filled(uint8(0), w, h)
		for _, cell := range cells {
			if !g.Set(cell.X, cell.Y, on) {
				return nil, fmt.Errorf("%w: cell %v outside %dx%d", ErrCorrupt, cell, w, h)
			}
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: unknown layout %d", ErrCorrupt, layout)
	}
}
