package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"uk.ac.bris.cs/gridspace/codec"
	"uk.ac.bris.cs/gridspace/config"
	"uk.ac.bris.cs/gridspace/grid"
	"uk.ac.bris.cs/gridspace/life"
	"uk.ac.bris.cs/gridspace/pgm"
)

var (
	configPath  string
	verbose     bool
	interactive bool
	overrides   config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gridlife",
	Short: "Run Conway's Game of Life on a tiled grid",
	Long: `gridlife plays the Game of Life on a torus. Each turn the board is split
into disjoint tiles, one group per worker, and the workers update their
tiles in parallel.

With --interactive, key presses on stdin control the run:
  s  save the current board
  p  pause / resume
  q  quit`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg.Logging)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var keys <-chan rune
		if interactive {
			keys = readKeys(ctx, cmd.InOrStdin())
		}
		return run(ctx, cfg, logger, keys, cmd.OutOrStdout())
	},
}

func init() {
	defaults := config.DefaultConfig()
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "gridlife.yaml", "YAML configuration file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.BoolVarP(&interactive, "interactive", "i", false, "read s/p/q key presses from stdin")
	flags.IntVarP(&overrides.Turns, "turns", "t", defaults.Turns, "number of turns")
	flags.IntVar(&overrides.Threads, "threads", defaults.Threads, "number of workers")
	flags.IntVar(&overrides.Width, "width", defaults.Width, "board width for random boards")
	flags.IntVar(&overrides.Height, "height", defaults.Height, "board height for random boards")
	flags.StringVar(&overrides.Input, "input", "", "PGM image to start from")
	flags.Int64Var(&overrides.Seed, "seed", defaults.Seed, "random board seed")
	flags.Float64Var(&overrides.Density, "density", defaults.Density, "random board alive fraction")
	flags.StringVarP(&overrides.OutputDir, "out", "o", defaults.OutputDir, "output directory")
	flags.StringVar(&overrides.Format, "format", defaults.Format, "output format: pgm or snapshot")
}

// loadConfig reads the config file and applies flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("turns") {
		cfg.Turns = overrides.Turns
	}
	if flags.Changed("threads") {
		cfg.Threads = overrides.Threads
	}
	if flags.Changed("width") {
		cfg.Width = overrides.Width
	}
	if flags.Changed("height") {
		cfg.Height = overrides.Height
	}
	if flags.Changed("input") {
		cfg.Input = overrides.Input
	}
	if flags.Changed("seed") {
		cfg.Seed = overrides.Seed
	}
	if flags.Changed("density") {
		cfg.Density = overrides.Density
	}
	if flags.Changed("out") {
		cfg.OutputDir = overrides.OutputDir
	}
	if flags.Changed("format") {
		cfg.Format = overrides.Format
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(c config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// loadBoard reads the input image or generates a random board.
func loadBoard(cfg *config.Config) (*grid.Grid[uint8], error) {
	if cfg.Input != "" {
		board, err := pgm.ReadFile(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", cfg.Input, err)
		}
		cfg.Width, cfg.Height = board.Width(), board.Height()
		return board, nil
	}
	r := rand.New(rand.NewSource(cfg.Seed))
	return grid.Generate(func(x, y int) uint8 {
		if r.Float64() < cfg.Density {
			return life.Alive
		}
		return life.Dead
	}, cfg.Width, cfg.Height), nil
}

// newSaver writes boards named <width>x<height>x<turn> into the output directory.
func newSaver(cfg *config.Config) life.Saver {
	return func(turn int, board *grid.View[uint8]) (string, error) {
		name := fmt.Sprintf("%dx%dx%d", board.Width(), board.Height(), turn)
		if cfg.Format == config.FormatPGM {
			return pgm.WriteFile(cfg.OutputDir, name, board)
		}

		if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
			return "", err
		}
		path := filepath.Join(cfg.OutputDir, name+".gsnp")
		file, err := os.Create(path)
		if err != nil {
			return "", err
		}
		defer file.Close()
		if err := codec.WriteSnapshot(file, board); err != nil {
			return "", err
		}
		return path, file.Sync()
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, keys <-chan rune, out io.Writer) error {
	board, err := loadBoard(cfg)
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("run", uuid.NewString()))

	events := make(chan life.Event)
	errc := make(chan error, 1)
	go func() {
		errc <- life.Run(ctx, cfg.Params(), board, events, keys,
			life.WithLogger(logger),
			life.WithSaver(newSaver(cfg)),
			life.WithTickInterval(cfg.Tick),
		)
	}()

	for event := range events {
		switch e := event.(type) {
		case life.CellsFlipped:
			// Too frequent to print.
		case life.TurnComplete:
			logger.Debug("turn complete", zap.Int("turn", e.CompletedTurns))
		default:
			fmt.Fprintf(out, "Completed Turns %-8v %v\n", event.GetCompletedTurns(), event)
		}
	}
	return <-errc
}

// readKeys forwards the first byte of every stdin line as a key press.
func readKeys(ctx context.Context, in io.Reader) <-chan rune {
	keys := make(chan rune)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			select {
			case keys <- rune(line[0]):
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}
