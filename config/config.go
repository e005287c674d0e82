// Package config loads run settings with priority: environment > file > defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"explore/delivery"
	"explore/experiments"
	"explore/game/magicsum"
	"explore/meta"
	"explore/searcher"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	LogLevel string          `yaml:"log_level"`
	Search   SearchConfig    `yaml:"search"`
	Play     PlayConfig      `yaml:"play"`
	Arena    ArenaConfig     `yaml:"arena"`
	Delivery DeliveryConfig  `yaml:"delivery"`
	MagicSum magicsum.Config `yaml:"magic_sum"`
}

type SearchConfig struct {
	Algorithm      string `yaml:"algorithm"`
	CycleAvoidance bool   `yaml:"cycle_avoidance"`
	ProgressEvery  int    `yaml:"progress_every"`
}

type PlayConfig struct {
	Game     string `yaml:"game"`
	Depth    int    `yaml:"depth"`
	MaxMoves int    `yaml:"max_moves"`
	Seed     uint64 `yaml:"seed"`
}

type ArenaConfig struct {
	Games      int    `yaml:"games"` // Per match up
	MaxDepth   int    `yaml:"max_depth"`
	ResultsDir string `yaml:"results_dir"`
}

type DeliveryConfig struct {
	HazardCost float64  `yaml:"hazard_cost"`
	Portals    []string `yaml:"portals"` // "r,c:r,c"
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Search: SearchConfig{
			Algorithm:      meta.ALGORITHM,
			CycleAvoidance: true,
			ProgressEvery:  meta.PROGRESS_EVERY,
		},
		Play: PlayConfig{
			Game:     meta.GAME,
			Depth:    meta.DEPTH,
			MaxMoves: meta.MAX_MOVES,
			Seed:     meta.SEED,
		},
		Arena: ArenaConfig{
			Games:      meta.NUM_GAMES,
			MaxDepth:   meta.DEPTH,
			ResultsDir: meta.RESULTS_DIR,
		},
		Delivery: DeliveryConfig{
			HazardCost: delivery.DefaultHazardCost,
		},
		MagicSum: magicsum.DefaultConfig(),
	}
}

// Load overlays the YAML file at path (if path is not empty) and the
// EXPLORE_* environment variables on the defaults, then validates the result.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("load config file: %w", err)
		}
		if err := c.decode(data); err != nil {
			return c, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("EXPLORE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("EXPLORE_ALGORITHM"); v != "" {
		c.Search.Algorithm = v
	}
	if v := os.Getenv("EXPLORE_GAME"); v != "" {
		c.Play.Game = v
	}
	if v := os.Getenv("EXPLORE_DEPTH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Play.Depth = i
		}
	}
	if v := os.Getenv("EXPLORE_SEED"); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Play.Seed = i
		}
	}
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	if _, err := searcher.ParseStrategy(c.Search.Algorithm); err != nil {
		return fmt.Errorf("%w: search.algorithm: %w", ErrInvalid, err)
	}
	if c.Search.ProgressEvery < 0 {
		return fmt.Errorf("%w: search.progress_every must be >= 0", ErrInvalid)
	}
	if !slices.Contains(experiments.Games, c.Play.Game) {
		return fmt.Errorf("%w: play.game %q, want one of %v", ErrInvalid, c.Play.Game, experiments.Games)
	}
	if c.Play.Depth < 1 {
		return fmt.Errorf("%w: play.depth must be >= 1", ErrInvalid)
	}
	if c.Play.MaxMoves < 1 {
		return fmt.Errorf("%w: play.max_moves must be >= 1", ErrInvalid)
	}
	if c.Arena.Games < 1 {
		return fmt.Errorf("%w: arena.games must be >= 1", ErrInvalid)
	}
	if c.Arena.MaxDepth < 1 {
		return fmt.Errorf("%w: arena.max_depth must be >= 1", ErrInvalid)
	}
	if c.Delivery.HazardCost < 1 {
		return fmt.Errorf("%w: delivery.hazard_cost must be >= 1", ErrInvalid)
	}
	if _, err := c.Portals(); err != nil {
		return fmt.Errorf("%w: delivery.portals: %w", ErrInvalid, err)
	}
	if err := c.MagicSum.Validate(); err != nil {
		return fmt.Errorf("%w: magic_sum: %w", ErrInvalid, err)
	}
	return nil
}

// Level returns the zerolog level named by LogLevel, or info if it is invalid.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c Config) Portals() ([]delivery.Portal, error) {
	portals := make([]delivery.Portal, 0, len(c.Delivery.Portals))
	for _, text := range c.Delivery.Portals {
		p, err := delivery.ParsePortal(text)
		if err != nil {
			return nil, err
		}
		portals = append(portals, p)
	}
	return portals, nil
}

// Strategy returns the validated search strategy.
func (c Config) Strategy() searcher.Strategy {
	return searcher.Strategy(c.Search.Algorithm)
}
