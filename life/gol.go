// Package life runs Conway's Game of Life on a torus, splitting each turn
// across workers that own disjoint tiles of the board.
package life

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"uk.ac.bris.cs/gridspace/grid"
	"uk.ac.bris.cs/gridspace/tiling"
)

// ErrBoardSize is returned when the initial board does not match Params.
var ErrBoardSize = errors.New("life: board size does not match params")

// Params provides the details of how to run the Game of Life.
type Params struct {
	Turns       int
	Threads     int
	ImageWidth  int
	ImageHeight int
}

// Saver persists a snapshot of the board and returns the name it was saved under.
type Saver func(turn int, board *grid.View[uint8]) (string, error)

type options struct {
	logger *zap.Logger
	saver  Saver
	tick   time.Duration
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSaver sets where 's' key presses and the final board are written.
// Without one, no images are produced.
func WithSaver(saver Saver) Option {
	return func(o *options) {
		o.saver = saver
	}
}

// WithTickInterval sets how often AliveCellsCount events are sent.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		o.tick = d
	}
}

type TurnResult struct {
	countDiff int          // Difference in alive cell count
	flipped   []grid.Point // Cells flipped by this worker
}

// Step computes one turn: every cell of next is overwritten with the
// successor of current. The board is cut into tiles for threads workers;
// each worker reads current through a shared view and writes its own tiles
// of next. Returns the flipped cells in tile order and the alive cell count
// difference.
func Step(ctx context.Context, current, next *grid.Grid[uint8], threads int) ([]grid.Point, int, error) {
	if current.Width() != next.Width() || current.Height() != next.Height() {
		return nil, 0, fmt.Errorf("%w: %dx%d and %dx%d", ErrBoardSize,
			current.Width(), current.Height(), next.Width(), next.Height())
	}
	if threads < 1 {
		threads = 1
	}

	view := current.AsView()
	defer view.Release()

	tiles := tiling.Split(next.AsViewMut(), threads)
	groups := tiling.Assign(tiles, threads)
	results := make([]TurnResult, len(groups))

	g, ctx := errgroup.WithContext(ctx)
	for i, group := range groups {
		g.Go(func() error {
			for _, tile := range group {
				defer tile.Release()
			}
			for _, tile := range group {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i].countDiff += evolve(view, tile, &results[i].flipped)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	// All workers completed current turn
	total := 0
	for _, result := range results {
		total += len(result.flipped)
	}
	flipped := make([]grid.Point, 0, total)
	countDiff := 0
	for _, result := range results {
		flipped = append(flipped, result.flipped...)
		countDiff += result.countDiff
	}
	return flipped, countDiff, nil
}
