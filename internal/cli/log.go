package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logLimit int

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "number of events to show")
	rootCmd.AddCommand(logCmd)
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recently applied XP events",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	_, j, err := openEngine()
	if err != nil {
		return err
	}
	defer closeJournal(j)

	if j == nil {
		return fmt.Errorf("event journal is disabled")
	}

	entries, err := j.Recent(logLimit)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No events recorded yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %+4d  %s\n", e.AppliedAt.Format("2006-01-02 15:04"), e.Points, e.Label)
	}
	return nil
}
