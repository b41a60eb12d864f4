package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// Build metadata, overridden through ldflags on release builds.
var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

const appName = "sponsorcatcher"

func NewRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Watches a members portal for sponsorship slots and claims one the moment it appears",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}

			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
