package cli

import (
	"github.com/spf13/cobra"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/internal/usecase"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	var checks []string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run consistency checks and print the combined report",
		Long: `Load the flight CSV, normalize every timestamp to UTC and run the
selected checks. Findings are printed grouped by check in the order
duplicates, overlaps, sequence, route, time.

Checks accept the short ids or the long names, e.g. --checks overlaps,checktimelogic.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, checks, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&checks, "checks", nil, "checks to run (default all)")

	return cmd
}

func runAnalyze(opts *RootOptions, names []string, cmd *cobra.Command) error {
	var kinds []entity.CheckKind
	for _, name := range names {
		kind, err := usecase.ParseCheckKind(name)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}

	log := newLogger(opts)
	defer log.Sync()

	report, err := newAnalysisService(opts, log).Analyze(cmd.Context(), usecase.AnalysisRequest{Checks: kinds})
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if out.IsJSON() {
		return out.JSON(report)
	}

	for _, finding := range report.Findings {
		out.Line("%s", finding.Message)
	}
	out.Line("%d findings, %d records analyzed, %d skipped, %d degraded",
		len(report.Findings), report.Records, len(report.Skipped), report.Degraded)
	return nil
}
