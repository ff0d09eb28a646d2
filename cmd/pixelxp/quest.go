package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
	"github.com/KirkDiggler/pixel-xp/internal/notify"
	"github.com/KirkDiggler/pixel-xp/internal/orchestrators/battle"
)

var (
	questXP       int
	questDuration time.Duration
	editTitle     string
	editXP        int
)

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Manage quests",
}

var questAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a quest",
	Args:  cobra.MinimumNArgs(1),
	RunE: withEngine(func(ctx context.Context, cmd *cobra.Command, e *engine, args []string) error {
		minutes, err := questMinutes(questDuration)
		if err != nil {
			return err
		}

		output, err := e.service.AddQuest(ctx, &battle.AddQuestInput{
			Title:           strings.Join(args, " "),
			XPValue:         questXP,
			DurationMinutes: minutes,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d XP, %s)\n",
			output.Quest.ID, output.Quest.XPValue, formatMinutes(output.Quest.DurationMinutes))
		return nil
	}),
}

var questListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quests and both XP totals",
	Args:  cobra.NoArgs,
	RunE: withEngine(func(ctx context.Context, cmd *cobra.Command, e *engine, _ []string) error {
		printState(cmd.OutOrStdout(), e.service.State(ctx), time.Now())
		return nil
	}),
}

var questDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a quest between complete and pending",
	Args:  cobra.ExactArgs(1),
	RunE: withEngine(func(ctx context.Context, cmd *cobra.Command, e *engine, args []string) error {
		output, err := e.service.ToggleQuestComplete(ctx, &battle.ToggleQuestCompleteInput{ID: args[0]})
		if err != nil {
			return err
		}
		status := "pending"
		if output.Quest.IsComplete {
			status = "complete"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is %s, user XP %d\n", output.Quest.Title, status, output.UserXP)
		return nil
	}),
}

var questDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a quest",
	Args:  cobra.ExactArgs(1),
	RunE: withEngine(func(ctx context.Context, cmd *cobra.Command, e *engine, args []string) error {
		output, err := e.service.DeleteQuest(ctx, &battle.DeleteQuestInput{ID: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s, user XP %d\n", output.Quest.Title, output.UserXP)
		return nil
	}),
}

var questEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a quest's title or XP value",
	Args:  cobra.ExactArgs(1),
	RunE: withEngine(func(ctx context.Context, cmd *cobra.Command, e *engine, args []string) error {
		started, err := e.service.StartEditQuest(ctx, &battle.StartEditQuestInput{ID: args[0]})
		if err != nil {
			return err
		}

		input := &battle.UpdateQuestInput{
			ID:      started.Quest.ID,
			Title:   started.Quest.Title,
			XPValue: started.Quest.XPValue,
		}
		if cmd.Flags().Changed("title") {
			input.Title = editTitle
		}
		if cmd.Flags().Changed("xp") {
			input.XPValue = editXP
		}

		output, err := e.service.UpdateQuest(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %q, %d XP, user XP %d\n",
			output.Quest.ID, output.Quest.Title, output.Quest.XPValue, output.UserXP)
		return nil
	}),
}

func init() {
	questAddCmd.Flags().IntVar(&questXP, "xp", 50, "XP awarded on completion")
	questAddCmd.Flags().DurationVar(&questDuration, "duration", 24*time.Hour, "time allowed before the rival claims the full XP")

	questEditCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	questEditCmd.Flags().IntVar(&editXP, "xp", 0, "new XP value")

	questCmd.AddCommand(questAddCmd)
	questCmd.AddCommand(questListCmd)
	questCmd.AddCommand(questDoneCmd)
	questCmd.AddCommand(questDeleteCmd)
	questCmd.AddCommand(questEditCmd)
}

type engineFunc func(ctx context.Context, cmd *cobra.Command, e *engine, args []string) error

// withEngine loads the engine for a one-shot command
func withEngine(fn engineFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		err = fn(ctx, cmd, e, args)
		printNotices(cmd.OutOrStdout(), e.notices.Drain())
		return err
	}
}

func printNotices(w io.Writer, notices []notify.Notice) {
	for _, n := range notices {
		marker := "*"
		if n.Severity == notify.SeverityDestructive {
			marker = "!"
		}
		fmt.Fprintf(w, "%s %s %s\n", marker, n.Title, n.Description)
	}
}

// questMinutes converts a --duration flag to whole minutes. Zero keeps the
// engine default.
func questMinutes(d time.Duration) (int, error) {
	if d != 0 && d > -time.Minute && d < time.Minute {
		return 0, fmt.Errorf("duration %s is shorter than a minute", d)
	}
	return int(d / time.Minute), nil
}

func printState(w io.Writer, state *entities.BattleState, now time.Time) {
	fmt.Fprintf(w, "You %d/%d XP   Rival %d/%d XP\n\n", state.UserXP, state.MaxXP, state.RivalXP, state.MaxXP)
	if len(state.Quests) == 0 {
		fmt.Fprintln(w, "No quests yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tXP\tLEFT\tTITLE")
	for _, q := range state.Quests {
		done := " "
		left := formatMinutes(q.TimeRemainingMinutes(now))
		if q.IsComplete {
			done = "x"
			left = "-"
		}
		fmt.Fprintf(tw, "%s\t[%s]\t%d\t%s\t%s\n", q.ID, done, q.XPValue, left, q.Title)
	}
	_ = tw.Flush()
}

func formatMinutes(minutes int) string {
	return (time.Duration(minutes) * time.Minute).String()
}
