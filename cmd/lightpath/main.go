package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/lightpath/internal/experiment"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	noColor   bool

	logger   = slog.New(slog.DiscardHandler)
	registry = experiment.NewRegistry()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lightpath:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lightpath",
		Short:         "light-ray trajectories around Newtonian, Schwarzschild and Kerr masses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			logger, err = newLogger(os.Stderr, level, logFormat, noColor)
			return err
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".lightpath", "data directory")
	pf.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", logFormatText, "log format: text or json")
	pf.BoolVar(&noColor, "no-color", false, "disable coloured log output")

	rootCmd.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newSweepCmd(),
		newCriticalCmd(),
		newScanCmd(),
		newPotentialCmd(),
		newPresetsCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportJSONCmd(),
		newExportCSVCmd(),
		newSVGCmd(),
		newReplayCmd(),
	)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})

	return rootCmd
}
