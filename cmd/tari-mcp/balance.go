package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	universemcp "github.com/tari-tools/universe-mcp-go"
)

var balanceJSON bool

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the wallet balance",
	RunE:  runBalance,
}

func init() {
	balanceCmd.Flags().BoolVar(&balanceJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	return runWithClient(cmd.Context(), func(ctx context.Context, c universemcp.Client) error {
		balance, err := c.WalletBalance(ctx)
		if err != nil {
			return err
		}

		if balance.Error != "" {
			return fmt.Errorf("wallet not ready: %s", balance.Error)
		}

		if balanceJSON {
			return printJSON(balance)
		}

		fmt.Printf("Available:        %s\n", balance.Formatted.Available)
		fmt.Printf("Timelocked:       %s\n", balance.Formatted.Timelocked)
		fmt.Printf("Pending incoming: %s\n", balance.Formatted.PendingIncoming)
		fmt.Printf("Pending outgoing: %s\n", balance.Formatted.PendingOutgoing)

		return nil
	})
}
