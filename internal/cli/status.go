package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quackverse/ducktyper/internal/app/gamification"
	"github.com/quackverse/ducktyper/internal/infra/catalog"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show XP, level, streak and badge summary",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, j, err := openEngine()
	if err != nil {
		return err
	}
	defer closeJournal(j)

	p := svc.Progress()

	fmt.Printf("User:           %s\n", orDash(p.GitHubUsername))
	fmt.Printf("XP:             %d\n", p.XP)
	fmt.Printf("Level:          %d", p.Level)
	if next := gamification.XPToNextLevel(p.XP); next > 0 {
		fmt.Printf("  (%d XP to level %d, %.0f%%)", next, p.Level+1, gamification.ProgressPct(p.XP))
	}
	fmt.Println()
	fmt.Printf("Streak:         %d day(s), longest %d\n", p.CurrentStreak, p.LongestStreak)
	fmt.Printf("Last active:    %s\n", orDash(p.LastActiveDate))
	fmt.Printf("Quests done:    %d / %d\n", len(p.CompletedQuestIDs), len(catalog.Quests))
	fmt.Printf("Badges:         %d / %d\n", len(p.EarnedBadgeIDs), len(catalog.Badges))

	for _, id := range p.EarnedBadgeIDs {
		if b := catalog.GetBadge(id); b != nil {
			fmt.Printf("  %s %s\n", b.Emoji, b.Name)
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
