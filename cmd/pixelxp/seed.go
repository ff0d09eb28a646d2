package main

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pixel-xp/internal/orchestrators/battle"
)

var seedCount int

// demoTitles are cycled through when seeding
var demoTitles = []string{
	"Drink a glass of water",
	"Stretch for ten minutes",
	"Answer three emails",
	"Go for a walk",
	"Read a chapter",
	"Tidy the desk",
	"Practice an instrument",
	"Cook a real meal",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add demo quests with rolled XP and durations",
	Long: `Add demo quests. XP is rolled as 2d6 x 10 and the duration as 1d4 x 30 minutes,
so a seeded list gives the rival something to chase within a couple of hours.`,
	Args: cobra.NoArgs,
	RunE: withEngine(func(ctx context.Context, cmd *cobra.Command, e *engine, _ []string) error {
		for i := 0; i < seedCount; i++ {
			xp, err := rollTotal(2, 6)
			if err != nil {
				return err
			}
			slots, err := rollTotal(1, 4)
			if err != nil {
				return err
			}

			output, err := e.service.AddQuest(ctx, &battle.AddQuestInput{
				Title:           demoTitles[i%len(demoTitles)],
				XPValue:         xp * 10,
				DurationMinutes: slots * 30,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s: %s (%d XP, %s)\n",
				output.Quest.ID, output.Quest.Title, output.Quest.XPValue,
				formatMinutes(output.Quest.DurationMinutes))
		}
		return nil
	}),
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 5, "number of quests to add")
}

// rollTotal rolls count dice of the given size with rpg-toolkit
func rollTotal(count, size int) (int, error) {
	roll, err := dice.NewRoll(count, size)
	if err != nil {
		return 0, fmt.Errorf("failed to create dice roll: %w", err)
	}
	return int(roll.GetValue()), nil
}
