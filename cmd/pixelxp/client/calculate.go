package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pixel-xp/internal/clients/rivalclient"
	"github.com/KirkDiggler/pixel-xp/internal/entities"
	"github.com/KirkDiggler/pixel-xp/internal/rival"
)

var questSpecs []string

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Ask the rival server for its XP gain",
	Long: `Send incomplete quests to the rival server and print its gain.
Each --quest is xp:duration:remaining in minutes, e.g. --quest 100:60:30`,
	Example: "  pixelxp client calculate --quest 100:60:30 --quest 50:1440:0",
	RunE: func(cmd *cobra.Command, _ []string) error {
		quests := make([]entities.IncompleteQuest, 0, len(questSpecs))
		for _, spec := range questSpecs {
			q, err := parseQuestSpec(spec)
			if err != nil {
				return err
			}
			quests = append(quests, q)
		}

		conn, err := rivalclient.Dial(serverAddr)
		if err != nil {
			return err
		}
		defer func() {
			if err := conn.Close(); err != nil {
				log.Printf("Failed to close connection: %v", err)
			}
		}()

		calc, err := rivalclient.New(&rivalclient.Config{Conn: conn, Timeout: timeout})
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		output, err := calc.Calculate(ctx, &rival.CalculateInput{IncompleteQuests: quests})
		if err != nil {
			return fmt.Errorf("failed to calculate rival xp: %w", err)
		}

		pretty, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
		return nil
	},
}

func init() {
	calculateCmd.Flags().StringArrayVar(&questSpecs, "quest", nil, "incomplete quest as xp:duration:remaining (repeatable)")
}

func parseQuestSpec(spec string) (entities.IncompleteQuest, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return entities.IncompleteQuest{}, fmt.Errorf("invalid quest %q: expected xp:duration:remaining", spec)
	}

	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return entities.IncompleteQuest{}, fmt.Errorf("invalid quest %q: %w", spec, err)
		}
		values[i] = v
	}

	return entities.IncompleteQuest{
		XPValue:              values[0],
		DurationMinutes:      values[1],
		TimeRemainingMinutes: values[2],
	}, nil
}
