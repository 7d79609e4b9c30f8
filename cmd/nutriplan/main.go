// Nutriplan is a terminal client for Nutriplan nutrition planning backends.
//
// It provides backend discovery, an interactive planning form, and direct
// commands for fetching recipes and managing configuration. The client
// communicates with a backend over HTTP; plans are always computed
// server-side.
//
// Usage:
//
//	nutriplan [command] [flags]
//
// Running without arguments launches the interactive planner.
// See 'nutriplan --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nutrikit/nutriplan/internal/logging"
	"github.com/nutrikit/nutriplan/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nutriplan",
	Short: "Nutriplan Terminal Client",
	Long: `A terminal client for Nutriplan nutrition planning backends.

Provides backend discovery, an interactive planning form, and direct
commands for fetching recipes and managing configuration.

If no command is specified, the interactive planner will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the planner when no subcommand provided
		return runPlan(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nutriplan %s (commit: %s)\n", version.Version, version.Commit)
	},
}
