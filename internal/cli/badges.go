package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quackverse/ducktyper/internal/infra/catalog"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List earned badges and remaining milestones",
	Args:  cobra.NoArgs,
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	svc, j, err := openEngine()
	if err != nil {
		return err
	}
	defer closeJournal(j)

	progress := svc.Progress()

	fmt.Println("Earned:")
	for _, b := range catalog.Badges {
		if progress.HasEarnedBadge(b.ID) {
			fmt.Printf("  %s %-20s %s\n", b.Emoji, b.Name, b.Description)
		}
	}
	fmt.Println("Remaining:")
	for _, b := range catalog.Badges {
		if !progress.HasEarnedBadge(b.ID) {
			fmt.Printf("    %-20s %s (requires %d XP)\n", b.Name, b.Description, b.RequiredXP)
		}
	}
	return nil
}
