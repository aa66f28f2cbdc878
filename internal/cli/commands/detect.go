package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatsift/chatsift/pkg/lineparse"
	"github.com/chatsift/chatsift/pkg/platform"
	"github.com/chatsift/chatsift/pkg/timefmt"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <export-file>",
		Short: "Detect the timestamp format of a free-text chat export",
		Long: `Analyze a free-text chat export to infer its timestamp format.

Samples message-start lines from the file and eliminates date-order
candidates by field-value constraints: a field above 12 cannot be a
month, a field above 31 cannot be a day. If no field in the sample
disambiguates the date order, the format is reported as ambiguous and
parsing requires an explicit --date-order override.

Example:
  chatsift detect chat.txt
  chatsift detect --sample 500 chat.txt
  chatsift detect -o json chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	exportFile := args[0]

	f, err := os.Open(exportFile) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	lines, err := lineparse.ReadLines(f)
	if err != nil {
		return err
	}
	tokens := platform.SampleTokens(lines, opts.SampleSize)

	inf := timefmt.NewInferrer(timefmt.WithSampleSize(opts.SampleSize))
	desc, err := inf.Infer(tokens)

	switch opts.Output {
	case "json":
		return outputDetectJSON(exportFile, len(tokens), desc, err)
	default:
		return outputDetectText(exportFile, len(tokens), desc, err)
	}
}

func outputDetectText(exportFile string, sampled int, desc timefmt.Descriptor, inferErr error) error {
	fmt.Println("=== Timestamp Format Detection ===")
	fmt.Println()
	fmt.Printf("File: %s\n", exportFile)
	fmt.Printf("Message-start lines sampled: %d\n", sampled)
	fmt.Println()

	var ambiguous *timefmt.AmbiguousFormatError
	var noMatch *timefmt.NoMatchError
	switch {
	case inferErr == nil:
		fmt.Printf("Detected format: %s\n", desc)
		fmt.Println()
		fmt.Println("--- Flags for 'chatsift parse' ---")
		fmt.Printf("  --date-order %s --clock %s\n", dateOrderFlag(desc.Order), clockFlag(desc.Clock))
	case errors.As(inferErr, &ambiguous):
		fmt.Println("The date order is ambiguous: no field in the sample exceeds 12.")
		fmt.Println("Candidates:")
		for _, c := range ambiguous.Candidates {
			fmt.Printf("  - %s (use --date-order %s --clock %s)\n", c, dateOrderFlag(c.Order), clockFlag(c.Clock))
		}
	case errors.As(inferErr, &noMatch):
		fmt.Println("No candidate timestamp format matched.")
		if noMatch.Line != "" {
			fmt.Printf("Offending token: %q\n", noMatch.Line)
		}
		fmt.Println()
		fmt.Println("Tip: the file may not be a free-text chat export.")
	default:
		return inferErr
	}

	return nil
}

// DetectJSON is the JSON shape of detection output.
type DetectJSON struct {
	File       string   `json:"file"`
	Sampled    int      `json:"sampled_lines"`
	DateOrder  string   `json:"date_order,omitempty"`
	Clock      string   `json:"clock,omitempty"`
	Ambiguous  bool     `json:"ambiguous,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func outputDetectJSON(exportFile string, sampled int, desc timefmt.Descriptor, inferErr error) error {
	out := DetectJSON{
		File:    exportFile,
		Sampled: sampled,
	}

	var ambiguous *timefmt.AmbiguousFormatError
	switch {
	case inferErr == nil:
		out.DateOrder = dateOrderFlag(desc.Order)
		out.Clock = clockFlag(desc.Clock)
	case errors.As(inferErr, &ambiguous):
		out.Ambiguous = true
		for _, c := range ambiguous.Candidates {
			out.Candidates = append(out.Candidates, dateOrderFlag(c.Order))
		}
	default:
		out.Error = inferErr.Error()
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func dateOrderFlag(o timefmt.DateOrder) string {
	switch o {
	case timefmt.OrderDayFirst:
		return "day-first"
	case timefmt.OrderMonthFirst:
		return "month-first"
	case timefmt.OrderYearMonthDay:
		return "year-month-day"
	case timefmt.OrderYearDayMonth:
		return "year-day-month"
	default:
		return "unknown"
	}
}

func clockFlag(c timefmt.Clock) string {
	if c == timefmt.Clock12 {
		return "12h"
	}
	return "24h"
}
