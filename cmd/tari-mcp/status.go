package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	universemcp "github.com/tari-tools/universe-mcp-go"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show mining and node status",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return runWithClient(cmd.Context(), func(ctx context.Context, c universemcp.Client) error {
		mining, err := c.MiningStatus(ctx)
		if err != nil {
			return err
		}

		node, err := c.NodeStatus(ctx)
		if err != nil {
			return err
		}

		if statusJSON {
			return printJSON(map[string]any{
				"mining": mining,
				"node":   node,
			})
		}

		fmt.Printf("CPU mining:  %s  (%.1f H/s)\n", onOff(mining.CPUMining.IsMining), mining.CPUMining.HashRate)
		fmt.Printf("GPU mining:  %s  (%.1f H/s)\n", onOff(mining.GPUMining.IsMining), mining.GPUMining.HashRate)
		fmt.Printf("Total:       %.1f H/s\n", mining.Overall.TotalHashRate)
		fmt.Println()
		fmt.Printf("Node:        %s, height %d, %d peers\n", node.SyncStatus, node.BlockHeight, node.PeerCount)

		return nil
	})
}

func onOff(b bool) string {
	if b {
		return "on"
	}

	return "off"
}
