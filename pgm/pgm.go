// Package pgm reads and writes binary (P5) PGM images as uint8 grids.
package pgm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"uk.ac.bris.cs/gridspace/grid"
)

var (
	// ErrNotPGM is returned when the input does not start with a P5 header.
	ErrNotPGM = errors.New("pgm: not a pgm file")

	// ErrMaxval is returned for images whose maxval is not 255.
	ErrMaxval = errors.New("pgm: incorrect maxval/bit depth")
)

// Write writes the view as a P5 image, row by row.
func Write(w io.Writer, view *grid.View[uint8]) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n255\n", view.Width(), view.Height()); err != nil {
		return err
	}
	for v := range view.All() {
		if err := bw.WriteByte(v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses a P5 image.
func Read(r io.Reader) (*grid.Grid[uint8], error) {
	br := bufio.NewReader(r)

	magic, err := token(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotPGM, err)
	}
	if magic != "P5" {
		return nil, ErrNotPGM
	}

	var header [3]int
	for i := range header {
		field, err := token(br)
		if err != nil {
			return nil, fmt.Errorf("pgm: read header: %w", err)
		}
		header[i], err = strconv.Atoi(field)
		if err != nil || header[i] < 0 {
			return nil, fmt.Errorf("pgm: invalid header field %q", field)
		}
	}
	width, height, maxval := header[0], header[1], header[2]
	if maxval != 255 {
		return nil, fmt.Errorf("%w: %d", ErrMaxval, maxval)
	}

	size, ok := grid.Area(width, height)
	if !ok {
		return nil, fmt.Errorf("pgm: %w: %dx%d", grid.ErrTooLarge, width, height)
	}

	data, err := io.ReadAll(io.LimitReader(br, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("pgm: read pixels: %w", err)
	}
	if len(data) < size {
		return nil, fmt.Errorf("pgm: %w: got %d of %d pixels",
			grid.ErrInsufficientData, len(data), size)
	}
	return grid.FromSlice(data, width, height)
}

// token reads the next whitespace separated header field, skipping
// comments. The single whitespace byte after the field is consumed.
func token(br *bufio.Reader) (string, error) {
	var field []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(field) > 0 {
				return string(field), nil
			}
			return "", err
		}
		switch {
		case c == '#' && len(field) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(field) > 0 {
				return string(field), nil
			}
		default:
			field = append(field, c)
		}
	}
}

// WriteFile writes the view to dir/name.pgm, creating dir if needed, and
// returns the path written.
func WriteFile(dir, name string, view *grid.View[uint8]) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+".pgm")
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := Write(file, view); err != nil {
		return "", err
	}
	return path, file.Sync()
}

// ReadFile reads a P5 image from path.
func ReadFile(path string) (*grid.Grid[uint8], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}
