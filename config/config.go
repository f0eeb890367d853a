// Package config holds the settings for a gridlife run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"uk.ac.bris.cs/gridspace/life"
)

// Output formats.
const (
	FormatPGM      = "pgm"
	FormatSnapshot = "snapshot"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config describes a run: board source, engine parameters and output.
type Config struct {
	Turns   int `yaml:"turns"`
	Threads int `yaml:"threads"`
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`

	// Input is a PGM image to start from. When empty a random board is
	// generated from Seed and Density.
	Input   string  `yaml:"input"`
	Seed    int64   `yaml:"seed"`
	Density float64 `yaml:"density"`

	OutputDir string        `yaml:"output_dir"`
	Format    string        `yaml:"format"`
	Tick      time.Duration `yaml:"tick"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Turns:     100,
		Threads:   8,
		Width:     512,
		Height:    512,
		Seed:      1,
		Density:   0.25,
		OutputDir: "out",
		Format:    FormatPGM,
		Tick:      2 * time.Second,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets GRIDLIFE_TURNS and GRIDLIFE_THREADS override the file.
func (c *Config) applyEnvOverrides() {
	if v, err := strconv.Atoi(os.Getenv("GRIDLIFE_TURNS")); err == nil {
		c.Turns = v
	}
	if v, err := strconv.Atoi(os.Getenv("GRIDLIFE_THREADS")); err == nil {
		c.Threads = v
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch {
	case c.Turns < 0:
		return fmt.Errorf("%w: turns %d", ErrInvalid, c.Turns)
	case c.Threads < 1:
		return fmt.Errorf("%w: threads %d", ErrInvalid, c.Threads)
	case c.Input == "" && (c.Width < 1 || c.Height < 1):
		return fmt.Errorf("%w: board %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Density < 0 || c.Density > 1:
		return fmt.Errorf("%w: density %v", ErrInvalid, c.Density)
	case c.Format != FormatPGM && c.Format != FormatSnapshot:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	case c.Tick <= 0:
		return fmt.Errorf("%w: tick %v", ErrInvalid, c.Tick)
	}
	return nil
}

// Params converts the configuration into engine parameters.
func (c *Config) Params() life.Params {
	return life.Params{
		Turns:       c.Turns,
		Threads:     c.Threads,
		ImageWidth:  c.Width,
		ImageHeight: c.Height,
	}
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
