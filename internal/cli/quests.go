package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quackverse/ducktyper/internal/infra/catalog"
)

var questsSuggest int

func init() {
	questsCmd.Flags().IntVar(&questsSuggest, "suggest", 0, "show up to N suggested next quests")
	rootCmd.AddCommand(questsCmd)
}

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "List completed and available quests",
	Args:  cobra.NoArgs,
	RunE:  runQuests,
}

func runQuests(cmd *cobra.Command, args []string) error {
	svc, j, err := openEngine()
	if err != nil {
		return err
	}
	defer closeJournal(j)

	progress := svc.Progress()

	if questsSuggest > 0 {
		fmt.Println("Suggested next quests:")
		for _, q := range catalog.SuggestedQuests(progress, questsSuggest) {
			fmt.Printf("  [ ] %-16s %s (+%d XP)\n", q.ID, q.Description, q.RewardXP)
		}
		return nil
	}

	status := catalog.UserQuests(progress)

	fmt.Printf("Completed (%d):\n", len(status.Completed))
	for _, q := range status.Completed {
		fmt.Printf("  [x] %-16s %s\n", q.ID, q.Name)
	}
	fmt.Printf("Available (%d):\n", len(status.Available))
	for _, q := range status.Available {
		reward := fmt.Sprintf("+%d XP", q.RewardXP)
		if q.BadgeID != "" {
			if b := catalog.GetBadge(q.BadgeID); b != nil {
				reward += ", " + b.Emoji + " " + b.Name
			}
		}
		fmt.Printf("  [ ] %-16s %s (%s)\n", q.ID, q.Description, reward)
	}
	return nil
}
