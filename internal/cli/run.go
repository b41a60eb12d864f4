package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/myselfshravan/SponsorCatcher/internal/application"
	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
)

func newRunCmd() *cobra.Command {
	var bookingPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Perform a single reservation attempt and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			outcome, err := application.RunOnce(ctx, application.Options{
				BookingPath: bookingPath,
				Name:        appName,
				Version:     Version,
			})
			if err != nil {
				return err
			}

			printOutcome(cmd, outcome)

			// Anything short of a placed (or operator-ready) order is a
			// failed invocation for scripts driving this command.
			if outcome.Kind != entity.OutcomeSuccess && outcome.Kind != entity.OutcomeAwaitingManualSubmit {
				return fmt.Errorf("attempt ended with %s", outcome.Kind)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&bookingPath, "booking", "booking.yaml", "path to the booking config file")

	return cmd
}

func printOutcome(cmd *cobra.Command, outcome entity.Outcome) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "outcome: %s\n", outcome.Kind)

	if outcome.Title != "" {
		fmt.Fprintf(out, "product: %s\n", outcome.Title)
	}

	if outcome.Total != "" {
		fmt.Fprintf(out, "total: %s\n", outcome.Total)
	}

	if outcome.Warning != "" {
		fmt.Fprintf(out, "warning: %s\n", outcome.Warning)
	}
}
