package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quackverse/ducktyper/internal/domain"
)

var (
	eventID     string
	eventPoints int
)

func init() {
	eventCmd.Flags().StringVar(&eventID, "id", "", "event id (generated if omitted)")
	eventCmd.Flags().IntVar(&eventPoints, "points", 0, "XP points for the event")
	rootCmd.AddCommand(eventCmd)
}

var eventCmd = &cobra.Command{
	Use:   "event LABEL",
	Short: "Apply an ad-hoc XP event",
	Long: `Apply a single XP event to the progress record.
Supplying --id makes the event idempotent: the same id is only ever
awarded once. Without --id a random id is generated.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvent,
}

func runEvent(cmd *cobra.Command, args []string) error {
	if eventPoints < 0 {
		return domain.ErrNegativePoints
	}

	svc, j, err := openEngine()
	if err != nil {
		return err
	}
	defer closeJournal(j)

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	result := svc.HandleEvent(domain.XPEvent{
		ID:     id,
		Label:  args[0],
		Points: eventPoints,
	})

	fmt.Println(result.Message)
	for _, br := range svc.CheckXPBadges() {
		fmt.Println(br.Message)
	}
	return nil
}
