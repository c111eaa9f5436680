package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	universemcp "github.com/tari-tools/universe-mcp-go"
)

var resourcesJSON bool

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the resources the server exposes",
	Long: `List all resources the Tari Universe server advertises.

By default, outputs a human-readable table. Use --json for machine-readable output.`,
	RunE: runResources,
}

func init() {
	resourcesCmd.Flags().BoolVar(&resourcesJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	return runWithClient(cmd.Context(), func(ctx context.Context, c universemcp.Client) error {
		resources, err := c.ListResources(ctx)
		if err != nil {
			return err
		}

		if resourcesJSON {
			return printJSON(resources)
		}

		for _, r := range resources {
			fmt.Printf("%-35s %s\n", r.URI, r.Description)
		}

		return nil
	})
}
