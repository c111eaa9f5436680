package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	universemcp "github.com/tari-tools/universe-mcp-go"
)

var toolsJSON bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the server exposes",
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "Output as JSON (includes input schemas)")

	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	return runWithClient(cmd.Context(), func(ctx context.Context, c universemcp.Client) error {
		tools, err := c.ListTools(ctx)
		if err != nil {
			return err
		}

		if toolsJSON {
			return printJSON(tools)
		}

		for _, t := range tools {
			fmt.Printf("%-25s %s%s\n", t.Name, t.Description, requiredArgs(t.InputSchema))
		}

		return nil
	})
}

// requiredArgs summarizes a tool's required arguments for table output.
func requiredArgs(schema *jsonschema.Schema) string {
	if schema == nil || len(schema.Required) == 0 {
		return ""
	}

	return fmt.Sprintf("  (requires: %s)", strings.Join(schema.Required, ", "))
}
