package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	universemcp "github.com/tari-tools/universe-mcp-go"
)

var optimizeApply bool

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Suggest a mining mode for this machine",
	Long: `Inspect the machine's hardware and current mining configuration, then
suggest a mining mode. With --apply, the suggestion is applied via the
set_mining_mode tool.

Machines with plenty of CPU threads or a usable GPU get Ludicrous;
everything else gets Eco.`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().BoolVar(&optimizeApply, "apply", false, "Apply the suggested mode")

	rootCmd.AddCommand(optimizeCmd)
}

func suggestMode(hw *universemcp.HardwareInfo) string {
	if hw.GPU.Available || hw.CPU.MaxThreads >= 16 {
		return universemcp.MiningModeLudicrous
	}

	return universemcp.MiningModeEco
}

func runOptimize(cmd *cobra.Command, args []string) error {
	return runWithClient(cmd.Context(), func(ctx context.Context, c universemcp.Client) error {
		hw, err := c.HardwareInfo(ctx)
		if err != nil {
			return err
		}

		cfg, err := c.MiningConfig(ctx)
		if err != nil {
			return err
		}

		mode := suggestMode(hw)

		fmt.Printf("CPU threads: %d, GPUs: %d\n", hw.CPU.MaxThreads, hw.GPU.DeviceCount)
		fmt.Printf("Current mode: %s, suggested: %s\n", cfg.MiningMode, mode)

		if cfg.MiningMode == mode {
			fmt.Println("Nothing to change.")

			return nil
		}

		if !optimizeApply {
			fmt.Println("Re-run with --apply to switch.")

			return nil
		}

		resp, err := c.CallTool(ctx, universemcp.ToolSetMiningMode, map[string]any{"mode": mode})
		if err != nil {
			return err
		}

		if resp.Error != nil {
			return fmt.Errorf("set_mining_mode failed: %s", resp.Error.Message)
		}

		fmt.Printf("Mining mode set to %s.\n", mode)

		return nil
	})
}
