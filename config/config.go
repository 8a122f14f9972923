// Package config loads agent and experiment settings from YAML, with
// SPLENDOR_* environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"splendor/meta"
	"splendor/searcher"
)

type Search struct {
	Duration    time.Duration `yaml:"duration"`
	Depth       int           `yaml:"depth"`
	Exploration float64       `yaml:"exploration"`
	Discount    float64       `yaml:"discount"`
	WinReward   float64       `yaml:"win_reward"` // 0 disables
	Seed        uint64        `yaml:"seed"`       // 0 seeds from the clock
}

type Experiment struct {
	Name     string `yaml:"name"` // baseline, exploration or cutoff
	Games    int    `yaml:"games"`
	Seed     uint64 `yaml:"seed"`
	Output   string `yaml:"output"`
	Database string `yaml:"database"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	LogLevel   string     `yaml:"log_level"`
	Search     Search     `yaml:"search"`
	Experiment Experiment `yaml:"experiment"`
	Server     Server     `yaml:"server"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Search: Search{
			Duration:    searcher.TimeLimit,
			Depth:       searcher.MaxDepth,
			Exploration: searcher.Exploration,
			Discount:    searcher.Discount,
			WinReward:   searcher.WinReward,
		},
		Experiment: Experiment{
			Name:     "baseline",
			Games:    meta.GAMES,
			Seed:     meta.SEED,
			Output:   meta.OUTPUT_DIR,
			Database: meta.DATABASE,
		},
		Server: Server{Addr: meta.SERVER_ADDR},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var err error
	set := func(key string, parse func(string) error) {
		value, ok := lookup(key)
		if !ok || err != nil {
			return
		}
		if perr := parse(value); perr != nil {
			err = fmt.Errorf("invalid %s=%q: %w", key, value, perr)
		}
	}

	set("SPLENDOR_LOG_LEVEL", func(v string) error { c.LogLevel = v; return nil })
	set("SPLENDOR_DURATION", func(v string) (e error) { c.Search.Duration, e = time.ParseDuration(v); return })
	set("SPLENDOR_DEPTH", func(v string) (e error) { c.Search.Depth, e = strconv.Atoi(v); return })
	set("SPLENDOR_EXPLORATION", func(v string) (e error) { c.Search.Exploration, e = strconv.ParseFloat(v, 64); return })
	set("SPLENDOR_DISCOUNT", func(v string) (e error) { c.Search.Discount, e = strconv.ParseFloat(v, 64); return })
	set("SPLENDOR_WIN_REWARD", func(v string) (e error) { c.Search.WinReward, e = strconv.ParseFloat(v, 64); return })
	set("SPLENDOR_SEED", func(v string) (e error) { c.Search.Seed, e = strconv.ParseUint(v, 10, 64); return })
	set("SPLENDOR_GAMES", func(v string) (e error) { c.Experiment.Games, e = strconv.Atoi(v); return })
	set("SPLENDOR_OUTPUT", func(v string) error { c.Experiment.Output = v; return nil })
	set("SPLENDOR_DATABASE", func(v string) error { c.Experiment.Database = v; return nil })
	set("SPLENDOR_ADDR", func(v string) error { c.Server.Addr = v; return nil })
	return err
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.Search.Duration <= 0 {
		return fmt.Errorf("search duration must be positive, got %v", c.Search.Duration)
	}
	if c.Search.Depth < 2 {
		return fmt.Errorf("search depth must be at least 2, got %d", c.Search.Depth)
	}
	if c.Search.Exploration < 0 {
		return fmt.Errorf("exploration must not be negative, got %v", c.Search.Exploration)
	}
	if c.Search.Discount <= 0 || c.Search.Discount > 1 {
		return fmt.Errorf("discount must be in (0, 1], got %v", c.Search.Discount)
	}
	if c.Search.WinReward < 0 {
		return fmt.Errorf("win reward must not be negative, got %v", c.Search.WinReward)
	}
	if c.Experiment.Games < 0 {
		return fmt.Errorf("games must not be negative, got %d", c.Experiment.Games)
	}
	return nil
}

// Options converts the search settings into searcher options.
func (c Config) Options() []searcher.Option {
	options := []searcher.Option{
		searcher.WithDuration(c.Search.Duration),
		searcher.WithCutoff(c.Search.Depth),
		searcher.WithExploration(c.Search.Exploration),
		searcher.WithDiscount(c.Search.Discount),
		searcher.WithWinReward(c.Search.WinReward),
	}
	if c.Search.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Search.Seed))
	}
	return options
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
