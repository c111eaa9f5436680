package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tari-tools/universe-mcp-go/audit"
)

var (
	auditLimit int
	auditJSON  bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recorded tool invocations",
	Long: `Print the tool invocations recorded in the audit database, newest
first. Auditing must be enabled in the config file (audit.enabled = true).`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadFileConfig()
	if err != nil {
		return err
	}

	rec, err := audit.Open(cmd.Context(), auditDBPath(cfg))
	if err != nil {
		return err
	}
	defer rec.Close()

	entries, err := rec.Recent(cmd.Context(), auditLimit)
	if err != nil {
		return err
	}

	if auditJSON {
		return printJSON(entries)
	}

	for _, e := range entries {
		outcome := "ok"
		if !e.Success {
			outcome = "error: " + e.Error
		}

		fmt.Printf("%s  %-25s %4dms  %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Tool, e.DurationMS, outcome)
	}

	return nil
}
