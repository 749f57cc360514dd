package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quackverse/ducktyper/internal/config"
	"github.com/quackverse/ducktyper/internal/infra/store"
)

var resetForce bool

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the progress record",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if !resetForce {
		return fmt.Errorf("refusing to delete %s without --force", cfg.Progress.File)
	}

	if err := store.New(cfg.Progress.File).Reset(); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	fmt.Println("Progress reset. Fresh start — quack!")
	return nil
}
