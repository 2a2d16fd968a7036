// Package cli provides the command-line interface for ikb.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ikb-gg/ikb-go/internal/config"
	"github.com/ikb-gg/ikb-go/internal/plugin"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and wired dependencies
	cfg        *config.Config
	deps       *plugin.Dependencies
	cleanup    func(context.Context)
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ikb",
	Short: "Search NBA and NFL game data from the IKB API",
	Long: `ikb searches NBA and NFL game, team, and player statistics from the
IKB API. Queries are free text: a date (YYYY-MM-DD) and a sport keyword
are extracted automatically, with configured defaults filling the gaps.

Fetched game data is recorded to the memory store when one is enabled,
so agents can recall it later.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip wiring for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		var logger *slog.Logger
		logger, logCleanup = config.SetupLogger(cfg)

		deps, cleanup, err = plugin.BuildDependencies(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("wire dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cleanup != nil {
			cleanup(cmd.Context())
		}
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
