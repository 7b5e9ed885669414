package cli

import (
	"fmt"
	"slices"

	"flight-quality-analyzer/internal/usecase"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	CSVPath   string
	Timezones string
	Workers   int
	AllBreaks bool
	Policy    string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the fqa CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fqa",
		Short: "Flight schedule quality analyzer",
		Long: `Audit a batch of scheduled flight movements for data-quality problems:
duplicate records, insufficient turnaround, broken airport sequences,
same-airport routes and arrivals before departures.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			switch usecase.BadRecordPolicy(opts.Policy) {
			case usecase.SkipBadRecords, usecase.AbortOnBadRecord:
			default:
				return fmt.Errorf("invalid policy %q: must be skip or abort", opts.Policy)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.CSVPath, "csv", "data/flights.csv", "flight movements CSV file")
	cmd.PersistentFlags().StringVar(&opts.Timezones, "timezones", "data/airport_timezones.txt", "airport timezone map (text or .yaml)")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", 4, "aircraft groups evaluated concurrently")
	cmd.PersistentFlags().BoolVar(&opts.AllBreaks, "all-breaks", false, "report every broken pair in overlap and sequence checks")
	cmd.PersistentFlags().StringVar(&opts.Policy, "policy", string(usecase.SkipBadRecords), "unparseable timestamps: skip or abort")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewChainsCommand(opts))
	cmd.AddCommand(NewFlightsCommand(opts))

	return cmd
}
