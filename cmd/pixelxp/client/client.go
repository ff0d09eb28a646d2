// Package client provides commands that call a running rival server
package client

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running rival server",
	Long:  `Client commands exercise a rival server by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50052", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "Request timeout")

	ClientCmd.AddCommand(calculateCmd)
}
