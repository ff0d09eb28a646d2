package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pixel-xp/internal/pkg/schedule"
)

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Run the rival until interrupted",
	Long: `Load saved progress and update the rival on the configured interval,
reporting the score after each update. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runBattle,
}

func runBattle(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	e, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	report, err := schedule.New(cfg.Rival.Interval, func(ctx context.Context) {
		printNotices(out, e.notices.Drain())
		state := e.service.State(ctx)
		fmt.Fprintf(out, "You %d/%d XP   Rival %d/%d XP   quests %d\n",
			state.UserXP, state.MaxXP, state.RivalXP, state.MaxXP, len(state.Quests))
	})
	if err != nil {
		return err
	}

	if err := e.service.Start(ctx); err != nil {
		return err
	}
	if err := report.Start(ctx); err != nil {
		return err
	}

	log.Printf("Battle running, rival updates every %s", cfg.Rival.Interval)
	<-ctx.Done()
	log.Println("Received shutdown signal, stopping battle...")

	// one last report once the rival has stopped
	report.Stop()
	e.service.Stop()
	report.RunNow(context.Background())

	return nil
}
