package life

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"uk.ac.bris.cs/gridspace/grid"
)

type distributorChannels struct {
	events     chan<- Event
	keyPresses <-chan rune
}

// Run plays p.Turns turns starting from initial, reporting progress on
// events. Key presses: 's' saves the board, 'q' stops early, 'p' toggles
// pause. Cancelling ctx stops the run like 'q'. events is closed when Run
// returns. initial is not modified.
func Run(ctx context.Context, p Params, initial *grid.Grid[uint8], events chan<- Event, keyPresses <-chan rune, opts ...Option) error {
	defer close(events)

	o := options{
		logger: zap.NewNop(),
		tick:   2 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if initial.Width() != p.ImageWidth || initial.Height() != p.ImageHeight {
		return fmt.Errorf("%w: board is %dx%d, params want %dx%d", ErrBoardSize,
			initial.Width(), initial.Height(), p.ImageWidth, p.ImageHeight)
	}

	d := &distributor{
		p:       p,
		o:       o,
		c:       distributorChannels{events: events, keyPresses: keyPresses},
		current: initial.Clone(),
		next:    grid.Filled(Dead, p.ImageWidth, p.ImageHeight),
	}
	return d.run(ctx)
}

type distributor struct {
	p       Params
	o       options
	c       distributorChannels
	current *grid.Grid[uint8]
	next    *grid.Grid[uint8]
	turn    int
	count   int
}

func (d *distributor) run(ctx context.Context) error {
	log := d.o.logger.With(
		zap.Int("width", d.p.ImageWidth),
		zap.Int("height", d.p.ImageHeight),
		zap.Int("turns", d.p.Turns),
		zap.Int("threads", d.p.Threads),
	)
	log.Info("run started")

	// Report initial alive cells
	view := d.current.AsView()
	initials := AliveCells(view)
	view.Release()
	d.count = len(initials)
	d.c.events <- CellsFlipped{0, initials}

	// Alive timer
	ticker := time.NewTicker(d.o.tick)
	defer ticker.Stop()

	// Evaluate each turn
	d.c.events <- StateChange{d.turn, Executing}
	paused := false
loop:
	for d.turn != d.p.Turns || paused {
		if !paused {
			flipped, countDiff, err := Step(ctx, d.current, d.next, d.p.Threads)
			if err != nil {
				if ctx.Err() != nil {
					log.Info("run cancelled", zap.Int("turn", d.turn))
					break loop
				}
				return err
			}
			// Swap current and next board
			d.current, d.next = d.next, d.current
			d.count += countDiff
			d.turn++
			d.c.events <- CellsFlipped{d.turn, flipped}
			d.c.events <- TurnComplete{d.turn}
		}

		// Handle events, blocking while paused
		var wait <-chan time.Time
		if !paused {
			wait = alreadyFired
		}
		select {
		case <-ctx.Done():
			log.Info("run cancelled", zap.Int("turn", d.turn))
			break loop
		case <-ticker.C:
			d.c.events <- AliveCellsCount{d.turn, d.count}
		case char := <-d.c.keyPresses:
			switch char {
			case 's':
				if err := d.save(log); err != nil {
					return err
				}
			case 'q':
				log.Info("quit requested", zap.Int("turn", d.turn))
				break loop
			case 'p':
				paused = !paused
				if paused {
					log.Info("paused", zap.Int("turn", d.turn))
					d.c.events <- StateChange{d.turn, Paused}
				} else {
					log.Info("continuing", zap.Int("turn", d.turn))
					d.c.events <- StateChange{d.turn, Executing}
				}
			}
		case <-wait:
		}
	}

	view = d.current.AsView()
	alive := AliveCells(view)
	view.Release()
	d.c.events <- FinalTurnComplete{d.turn, alive}

	if err := d.save(log); err != nil {
		return err
	}

	d.c.events <- StateChange{d.turn, Quitting}
	log.Info("run finished", zap.Int("turn", d.turn), zap.Int("alive", len(alive)))
	return nil
}

// alreadyFired is a closed channel: selecting on it never blocks.
var alreadyFired = func() <-chan time.Time {
	c := make(chan time.Time)
	close(c)
	return c
}()

// save writes the current board through the configured saver.
func (d *distributor) save(log *zap.Logger) error {
	if d.o.saver == nil {
		return nil
	}
	view := d.current.AsView()
	defer view.Release()

	filename, err := d.o.saver(d.turn, view)
	if err != nil {
		log.Error("image output failed", zap.Int("turn", d.turn), zap.Error(err))
		return fmt.Errorf("life: save turn %d: %w", d.turn, err)
	}
	log.Debug("image output done", zap.String("file", filename))
	d.c.events <- ImageOutputComplete{d.turn, filename}
	return nil
}
