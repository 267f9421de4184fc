package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seqops/cliacase/internal/config"
	"github.com/seqops/cliacase/internal/logging"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=2.0.0"
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cliacase",
		Short: "CLIA case-list entry generator for Ion Torrent runs",
		Long: `cliacase appends a new case record to the CLIA case-list CSV.

Given a run directory, it derives the run name from the Torrent Server
Auto_user naming convention, collects the run's MSN sample identifiers
via sampleKeyGen.pl, computes the next sequential case number from the
last record, and appends one new line. A backup of the case list is
written before anything is modified.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/cliacase/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cliacase version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("cliacase", version)
		},
	}
}

// setup loads the config and builds the logger shared by all commands.
func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logging: %w", err)
	}

	return cfg, logger, nil
}
