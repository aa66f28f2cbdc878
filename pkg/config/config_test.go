package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chatsift/chatsift/pkg/timefmt"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
platform: whatsapp
format:
  date_order: day-first
  clock: 24h
sample_size: 50
max_skipped: 10
output: json
`)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Platform != "whatsapp" {
		t.Errorf("Platform = %q", cfg.Platform)
	}
	if cfg.SampleSize != 50 {
		t.Errorf("SampleSize = %d, want 50", cfg.SampleSize)
	}
	if cfg.MaxSkipped != 10 {
		t.Errorf("MaxSkipped = %d, want 10", cfg.MaxSkipped)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q", cfg.Output)
	}

	d, err := cfg.Format.Descriptor()
	if err != nil {
		t.Fatalf("Descriptor() error = %v", err)
	}
	if d.Order != timefmt.OrderDayFirst || d.Clock != timefmt.Clock24 {
		t.Errorf("Descriptor() = %v", d)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "platform: signal\n")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SampleSize != DefaultSampleSize {
		t.Errorf("SampleSize = %d, want default %d", cfg.SampleSize, DefaultSampleSize)
	}
	if cfg.MaxSkipped != DefaultMaxSkipped {
		t.Errorf("MaxSkipped = %d, want default %d", cfg.MaxSkipped, DefaultMaxSkipped)
	}
	if !cfg.Format.Empty() {
		t.Error("Format should be empty by default")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "platform: whatsapp\noutput: csv\n")

	t.Setenv(EnvPlatform, "telegram")
	t.Setenv(EnvOutput, "json")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Platform != "telegram" {
		t.Errorf("Platform = %q, want env override telegram", cfg.Platform)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want env override json", cfg.Output)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() accepted a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"known platform", Config{Platform: "facebook"}, false},
		{"unknown platform", Config{Platform: "discord"}, true},
		{"date order without clock", Config{Format: FormatConfig{DateOrder: "day-first"}}, true},
		{"clock without date order", Config{Format: FormatConfig{Clock: "24h"}}, true},
		{"bad date order", Config{Format: FormatConfig{DateOrder: "backwards", Clock: "24h"}}, true},
		{"bad clock", Config{Format: FormatConfig{DateOrder: "day-first", Clock: "13h"}}, true},
		{"negative sample size", Config{SampleSize: -1}, true},
		{"negative max skipped", Config{MaxSkipped: -1}, true},
		{"bad output", Config{Output: "xml"}, true},
		{"sqlite output", Config{Output: "sqlite"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatConfig_DescriptorMappings(t *testing.T) {
	orders := map[string]timefmt.DateOrder{
		"day-first":      timefmt.OrderDayFirst,
		"month-first":    timefmt.OrderMonthFirst,
		"year-month-day": timefmt.OrderYearMonthDay,
		"year-day-month": timefmt.OrderYearDayMonth,
	}
	for name, want := range orders {
		d, err := FormatConfig{DateOrder: name, Clock: "24h"}.Descriptor()
		if err != nil {
			t.Errorf("Descriptor(%q) error = %v", name, err)
			continue
		}
		if d.Order != want {
			t.Errorf("Descriptor(%q).Order = %v, want %v", name, d.Order, want)
		}
	}

	d, err := FormatConfig{DateOrder: "day-first", Clock: "12h"}.Descriptor()
	if err != nil || d.Clock != timefmt.Clock12 {
		t.Errorf("12h clock = %v, %v", d.Clock, err)
	}
}
