// Package main is the entry point for the pixelxp command
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pixel-xp/cmd/pixelxp/client"
	"github.com/KirkDiggler/pixel-xp/internal/config"
)

var (
	configPath string

	// cfg is resolved before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pixelxp",
	Short: "Pixel XP quest battle",
	Long: `Pixel XP turns a to-do list into a battle: completing quests earns XP,
while a rival gains XP from quests left undone as their deadlines approach.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level, _ := cfg.SlogLevel()
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./pixelxp.yaml or ~/.config/pixelxp/pixelxp.yaml)")

	rootCmd.AddCommand(questCmd)
	rootCmd.AddCommand(battleCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
