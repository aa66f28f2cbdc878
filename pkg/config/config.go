// Package config provides configuration loading and validation for
// chatsift.
package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chatsift/chatsift/pkg/timefmt"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Platform is the default platform to parse when none is given on
	// the command line.
	Platform string `yaml:"platform,omitempty"`

	// Format overrides timestamp format inference.
	Format FormatConfig `yaml:"format,omitempty"`

	// SampleSize bounds the inference sample.
	SampleSize int `yaml:"sample_size,omitempty"`

	// MaxSkipped bounds the tolerated unparseable lines per export.
	MaxSkipped int `yaml:"max_skipped,omitempty"`

	// ChatName selects a chat from a multi-chat export (Telegram).
	ChatName string `yaml:"chat_name,omitempty"`

	// Output selects the export format (csv, json, sqlite).
	Output string `yaml:"output,omitempty"`
}

// FormatConfig is the YAML form of a timestamp format descriptor.
// Both fields must be set together or not at all.
type FormatConfig struct {
	// DateOrder is one of: day-first, month-first, year-month-day,
	// year-day-month.
	DateOrder string `yaml:"date_order,omitempty"`

	// Clock is "12h" or "24h".
	Clock string `yaml:"clock,omitempty"`
}

// Empty reports whether no override is configured.
func (f FormatConfig) Empty() bool {
	return f.DateOrder == "" && f.Clock == ""
}

// Descriptor converts the configured override to a format descriptor.
func (f FormatConfig) Descriptor() (timefmt.Descriptor, error) {
	var d timefmt.Descriptor

	switch f.DateOrder {
	case "day-first":
		d.Order = timefmt.OrderDayFirst
	case "month-first":
		d.Order = timefmt.OrderMonthFirst
	case "year-month-day":
		d.Order = timefmt.OrderYearMonthDay
	case "year-day-month":
		d.Order = timefmt.OrderYearDayMonth
	case "":
		return d, fmt.Errorf("date_order is required when clock is set")
	default:
		return d, fmt.Errorf("invalid date_order %q (must be day-first, month-first, year-month-day, or year-day-month)", f.DateOrder)
	}

	switch f.Clock {
	case "12h":
		d.Clock = timefmt.Clock12
	case "24h":
		d.Clock = timefmt.Clock24
	case "":
		return d, fmt.Errorf("clock is required when date_order is set")
	default:
		return d, fmt.Errorf("invalid clock %q (must be 12h or 24h)", f.Clock)
	}

	return d, nil
}

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.Platform != "" {
		if !knownPlatform(cfg.Platform) {
			return fmt.Errorf("platform: unknown platform %q", cfg.Platform)
		}
	}

	if !cfg.Format.Empty() {
		if _, err := cfg.Format.Descriptor(); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}

	if cfg.SampleSize < 0 {
		return fmt.Errorf("sample_size: must be positive")
	}
	if cfg.MaxSkipped < 0 {
		return fmt.Errorf("max_skipped: must be positive")
	}

	switch cfg.Output {
	case "", "csv", "json", "sqlite":
	default:
		return fmt.Errorf("output: invalid format %q (must be csv, json, or sqlite)", cfg.Output)
	}

	return nil
}

func knownPlatform(name string) bool {
	switch name {
	case "whatsapp", "signal", "telegram", "facebook", "instagram":
		return true
	default:
		return false
	}
}
