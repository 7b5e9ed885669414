package cli

import (
	"github.com/spf13/cobra"
)

// NewFlightsCommand creates the flights command.
func NewFlightsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Print the loaded flights with their UTC instants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlights(rootOpts, cmd)
		},
	}
	return cmd
}

func runFlights(opts *RootOptions, cmd *cobra.Command) error {
	log := newLogger(opts)
	defer log.Sync()

	batch, err := newAnalysisService(opts, log).Flights(cmd.Context())
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if out.IsJSON() {
		return out.JSON(batch)
	}

	const layout = "2006-01-02 15:04:05"
	for _, r := range batch.Records {
		out.Line("%d\t%s\t%s\t%s %s UTC\t%s %s UTC\t%s/%s",
			r.ID, r.RegistrationNumber, r.FlightNumber,
			r.DepartureAirport, r.DepartureUTC.Format(layout),
			r.ArrivalAirport, r.ArrivalUTC.Format(layout),
			r.DepartureNormalization, r.ArrivalNormalization)
	}
	for _, s := range batch.Skipped {
		out.Line("skipped %d: %s", s.ID, s.Reason)
	}
	return nil
}
