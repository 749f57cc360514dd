// Package cli implements the DuckTyper command-line interface using Cobra.
// Each subcommand maps to one engine surface (status, quests, badges,
// event intake, history, serve).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ducktyper",
	Short: "DuckTyper — gamified learning tracker",
	Long: `DuckTyper tracks your learning and contribution activity locally:
XP events, levels, quests, badges, and daily streaks.
One JSON file, one user, zero accounts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
