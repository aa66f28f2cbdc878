package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatsift/chatsift/pkg/config"
	"github.com/chatsift/chatsift/pkg/model"
	"github.com/chatsift/chatsift/pkg/output"
	"github.com/chatsift/chatsift/pkg/platform"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Platform   string
	Output     string
	Format     string
	ConfigFile string
	DateOrder  string
	Clock      string
	ChatName   string
	SampleSize int
	MaxSkipped int
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <export-file>",
		Short: "Parse a chat export into a message table",
		Long: `Parse one platform export into the canonical message table and write
it as CSV, JSON, or a SQLite database.

For WhatsApp exports the date format is inferred from a sample of the
file. When inference is ambiguous (no date field exceeds 12 in the
whole sample), supply --date-order and --clock explicitly.

Exit codes:
  0 - Export parsed
  1 - Export parsed but produced no messages
  2 - Configuration or runtime error

Example:
  chatsift parse -p whatsapp chat.txt -o chat.csv
  chatsift parse -p whatsapp --date-order day-first --clock 24h chat.txt -o chat.csv
  chatsift parse -p telegram --chat "Family" result.json -o family.db
  chatsift parse -p facebook message_1.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Platform, "platform", "p", "", "Platform the export came from (whatsapp|signal|telegram|facebook|instagram)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: CSV to stdout)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format (csv|json|sqlite; default from output extension)")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file")
	cmd.Flags().StringVar(&opts.DateOrder, "date-order", "", "Date field order override (day-first|month-first|year-month-day|year-day-month)")
	cmd.Flags().StringVar(&opts.Clock, "clock", "", "Clock convention override (12h|24h)")
	cmd.Flags().StringVar(&opts.ChatName, "chat", "", "Chat to extract from a multi-chat export (telegram)")
	cmd.Flags().IntVar(&opts.SampleSize, "sample", 0, "Lines sampled for format inference")
	cmd.Flags().IntVar(&opts.MaxSkipped, "max-skipped", 0, "Unparseable lines tolerated before the parse fails")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	inputFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := mergeConfig(ctx, opts)
	if err != nil {
		return err
	}

	if cfg.Platform == "" {
		return fmt.Errorf("no platform given (use --platform or a config file)")
	}
	parser, err := platform.ForName(cfg.Platform)
	if err != nil {
		return err
	}

	parseOpts := []platform.Option{
		platform.WithSampleSize(cfg.SampleSize),
		platform.WithMaxSkipped(cfg.MaxSkipped),
	}
	if cfg.ChatName != "" {
		parseOpts = append(parseOpts, platform.WithChatName(cfg.ChatName))
	}
	if !cfg.Format.Empty() {
		desc, err := cfg.Format.Descriptor()
		if err != nil {
			return err
		}
		parseOpts = append(parseOpts, platform.WithFormat(desc))
	}

	in, err := os.Open(inputFile) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	defer in.Close()

	table, err := parser.Parse(ctx, in, parseOpts...)
	if err != nil {
		return fmt.Errorf("parsing %s export: %w", cfg.Platform, err)
	}

	if err := writeTable(ctx, table, opts.Output, cfg.Output); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Parsed %d messages (%d events, %d lines skipped)\n",
		table.Len(), table.Events(), table.Skipped())

	if table.Len() == 0 {
		ExitCode = 1
	}
	return nil
}

// mergeConfig overlays command-line flags on the config file (flags win).
func mergeConfig(ctx context.Context, opts *ParseOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(ctx, opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Platform != "" {
		cfg.Platform = opts.Platform
	}
	if opts.DateOrder != "" {
		cfg.Format.DateOrder = opts.DateOrder
	}
	if opts.Clock != "" {
		cfg.Format.Clock = opts.Clock
	}
	if opts.ChatName != "" {
		cfg.ChatName = opts.ChatName
	}
	if opts.SampleSize > 0 {
		cfg.SampleSize = opts.SampleSize
	}
	if opts.MaxSkipped > 0 {
		cfg.MaxSkipped = opts.MaxSkipped
	}
	if opts.Format != "" {
		cfg.Output = opts.Format
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// writeTable routes the table to the requested destination and format.
// With no explicit format the output file extension decides.
func writeTable(ctx context.Context, table *model.Table, outPath, format string) error {
	format = formatForPath(outPath, format)

	if format == "sqlite" {
		if outPath == "" {
			return fmt.Errorf("sqlite output requires --output")
		}
		return output.NewSQLiteExporter().Export(ctx, table, outPath)
	}

	var formatter output.Formatter
	switch format {
	case "json":
		formatter = output.NewJSONFormatter()
	default:
		formatter = output.NewCSVFormatter()
	}

	if outPath == "" {
		return formatter.Format(ctx, table, os.Stdout)
	}
	f, err := os.Create(outPath) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return formatter.Format(ctx, table, f)
}

// formatForPath derives the output format. An explicit format wins;
// otherwise the output file extension decides, defaulting to CSV.
func formatForPath(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return "csv"
	}
}
