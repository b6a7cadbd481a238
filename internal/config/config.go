// Package config loads the simulator configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Instrument string `yaml:"instrument"`
	Book       struct {
		TradeLogCapacity int `yaml:"trade_log_capacity"`
	} `yaml:"book"`
	Generator struct {
		MidPrice    float64 `yaml:"mid_price"`
		PriceStdDev float64 `yaml:"price_std_dev"`
		MaxSize     int64   `yaml:"max_size"`
		Seed        int64   `yaml:"seed"` // 0 picks a time-based seed
	} `yaml:"generator"`
	Simulation struct {
		Interval  time.Duration `yaml:"interval"`
		MaxOrders int           `yaml:"max_orders"` // 0 runs until cancelled
	} `yaml:"simulation"`
	Dashboard struct {
		Enabled     bool `yaml:"enabled"`
		Rows        int  `yaml:"rows"`
		ClearScreen bool `yaml:"clear_screen"`
	} `yaml:"dashboard"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json or text
	} `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.Instrument = "GEMINI"
	cfg.Book.TradeLogCapacity = 10
	cfg.Generator.MidPrice = 100.0
	cfg.Generator.PriceStdDev = 1.5
	cfg.Generator.MaxSize = 100
	cfg.Simulation.Interval = 200 * time.Millisecond
	cfg.Dashboard.Enabled = true
	cfg.Dashboard.Rows = 15
	cfg.Dashboard.ClearScreen = true
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	return cfg
}

// Load reads path and overlays it on Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Book.TradeLogCapacity <= 0:
		return fmt.Errorf("book.trade_log_capacity must be positive: %w", ErrInvalidConfig)
	case c.Generator.MidPrice <= 0:
		return fmt.Errorf("generator.mid_price must be positive: %w", ErrInvalidConfig)
	case c.Generator.PriceStdDev < 0:
		return fmt.Errorf("generator.price_std_dev must not be negative: %w", ErrInvalidConfig)
	case c.Generator.MaxSize <= 0:
		return fmt.Errorf("generator.max_size must be positive: %w", ErrInvalidConfig)
	case c.Simulation.Interval < 0:
		return fmt.Errorf("simulation.interval must not be negative: %w", ErrInvalidConfig)
	case c.Simulation.MaxOrders < 0:
		return fmt.Errorf("simulation.max_orders must not be negative: %w", ErrInvalidConfig)
	case c.Dashboard.Rows <= 0:
		return fmt.Errorf("dashboard.rows must be positive: %w", ErrInvalidConfig)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalidConfig)
	}
	return nil
}

// LogLevel parses Logging.Level.
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level %q: %w", c.Logging.Level, ErrInvalidConfig)
	}
	return level, nil
}
