package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/myselfshravan/SponsorCatcher/internal/application"
)

func newWatchCmd() *cobra.Command {
	var bookingPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the catalog on an interval and claim the first availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return application.Watch(ctx, application.Options{
				BookingPath: bookingPath,
				Name:        appName,
				Version:     Version,
			})
		},
	}

	cmd.Flags().StringVar(&bookingPath, "booking", "booking.yaml", "path to the booking config file")

	return cmd
}
