package commands

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chatsift/chatsift/pkg/config"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path     string
		explicit string
		want     string
	}{
		{"out.csv", "", "csv"},
		{"out.json", "", "json"},
		{"out.db", "", "sqlite"},
		{"out.sqlite", "", "sqlite"},
		{"out.sqlite3", "", "sqlite"},
		{"out.txt", "", "csv"},
		{"", "", "csv"},
		{"out.json", "csv", "csv"},
		{"out.db", "json", "json"},
		{"OUT.JSON", "", "json"},
	}

	for _, tt := range tests {
		if got := formatForPath(tt.path, tt.explicit); got != tt.want {
			t.Errorf("formatForPath(%q, %q) = %q, want %q", tt.path, tt.explicit, got, tt.want)
		}
	}
}

func TestMergeConfig_FlagsWin(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "platform: whatsapp\nsample_size: 50\noutput: csv\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	opts := &ParseOptions{
		ConfigFile: cfgPath,
		Platform:   "telegram",
		Format:     "json",
	}
	cfg, err := mergeConfig(context.Background(), opts)
	if err != nil {
		t.Fatalf("mergeConfig() error = %v", err)
	}

	if cfg.Platform != "telegram" {
		t.Errorf("Platform = %q, want flag value telegram", cfg.Platform)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want flag value json", cfg.Output)
	}
	if cfg.SampleSize != 50 {
		t.Errorf("SampleSize = %d, want config value 50", cfg.SampleSize)
	}
}

func TestMergeConfig_NoFileUsesDefaults(t *testing.T) {
	cfg, err := mergeConfig(context.Background(), &ParseOptions{Platform: "signal"})
	if err != nil {
		t.Fatalf("mergeConfig() error = %v", err)
	}
	if cfg.SampleSize != config.DefaultSampleSize {
		t.Errorf("SampleSize = %d, want default", cfg.SampleSize)
	}
	if cfg.MaxSkipped != config.DefaultMaxSkipped {
		t.Errorf("MaxSkipped = %d, want default", cfg.MaxSkipped)
	}
}

func TestMergeConfig_RejectsInvalidOverride(t *testing.T) {
	_, err := mergeConfig(context.Background(), &ParseOptions{
		Platform:  "whatsapp",
		DateOrder: "sideways",
		Clock:     "24h",
	})
	if err == nil {
		t.Error("mergeConfig() accepted an invalid date order")
	}
}

func TestParseCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "chat.txt")
	export := "13/02/20, 14:05 - Alice: Hello\n" +
		"still Alice\n" +
		"14/02/20, 09:00 - Bob: Hi\n"
	if err := os.WriteFile(exportPath, []byte(export), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}
	outPath := filepath.Join(dir, "out.csv")

	ExitCode = 0
	defer func() { ExitCode = 0 }()

	cmd := NewParseCommand()
	cmd.SetArgs([]string{"-p", "whatsapp", "-o", outPath, exportPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus 2", len(rows))
	}
	if rows[1][1] != "Alice" || rows[1][2] != "Hello\nstill Alice" {
		t.Errorf("first row = %q/%q", rows[1][1], rows[1][2])
	}
}

func TestParseCommand_ExplicitFormatOverride(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "chat.txt")
	export := "01/02/20, 14:05 - Alice: Hello\n"
	if err := os.WriteFile(exportPath, []byte(export), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}
	outPath := filepath.Join(dir, "out.json")

	ExitCode = 0
	defer func() { ExitCode = 0 }()

	cmd := NewParseCommand()
	cmd.SetArgs([]string{
		"-p", "whatsapp",
		"--date-order", "month-first", "--clock", "24h",
		"-o", outPath, exportPath,
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "2020-01-02 14:05:00") {
		t.Errorf("output missing month-first timestamp: %s", data)
	}
}

func TestParseCommand_AmbiguousFormatFails(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "chat.txt")
	export := "01/02/20, 14:05 - Alice: Hello\n"
	if err := os.WriteFile(exportPath, []byte(export), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}

	cmd := NewParseCommand()
	cmd.SetArgs([]string{"-p", "whatsapp", exportPath})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() accepted an ambiguous export without an override")
	}
}

func TestParseCommand_MissingPlatform(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "chat.txt")
	if err := os.WriteFile(exportPath, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}

	cmd := NewParseCommand()
	cmd.SetArgs([]string{exportPath})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() accepted a parse with no platform")
	}
}
