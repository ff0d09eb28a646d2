package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	battlerepo "github.com/KirkDiggler/pixel-xp/internal/repositories/battle"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check saved progress for corruption",
	Long: `Read the saved quest list and user XP without changing them and report
unreadable values or quests that break the usual rules.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var closers cleanups
	defer closers.run()

	store, err := openStore(ctx, cfg, &closers)
	if err != nil {
		return err
	}

	report, err := battlerepo.Inspect(ctx, store, cfg.MaxXP)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store backend: %s\n", cfg.Store.Backend)
	for _, key := range []battlerepo.KeyReport{report.Quests, report.UserXP} {
		switch {
		case !key.Present:
			fmt.Fprintf(out, "  %-14s absent\n", key.Key)
		case key.Err != nil:
			fmt.Fprintf(out, "  %-14s UNREADABLE: %v\n", key.Key, key.Err)
		default:
			fmt.Fprintf(out, "  %-14s ok\n", key.Key)
		}
	}
	fmt.Fprintf(out, "Quests: %d   User XP: %d\n", report.QuestCount, report.UserXPVal)

	for _, problem := range report.Problems {
		fmt.Fprintf(out, "  problem: %s\n", problem)
	}

	if !report.Healthy() {
		return fmt.Errorf("saved progress needs attention")
	}
	fmt.Fprintln(out, "No problems found.")
	return nil
}
