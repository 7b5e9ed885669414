package cli

import (
	"github.com/spf13/cobra"
)

// NewChainsCommand creates the chains command.
func NewChainsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chains",
		Short: "List flights that do not depart from their aircraft's previous arrival airport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChains(rootOpts, cmd)
		},
	}
	return cmd
}

func runChains(opts *RootOptions, cmd *cobra.Command) error {
	log := newLogger(opts)
	defer log.Sync()

	records, err := newAnalysisService(opts, log).InconsistentChains(cmd.Context())
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if out.IsJSON() {
		if records == nil {
			return out.JSON([]any{})
		}
		return out.JSON(records)
	}

	for _, r := range records {
		out.Line("%d\t%s\t%s\t%s -> %s\t%s",
			r.ID, r.RegistrationNumber, r.FlightNumber, r.DepartureAirport, r.ArrivalAirport, r.DepartureLocal)
	}
	return nil
}
