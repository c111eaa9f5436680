package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	universemcp "github.com/tari-tools/universe-mcp-go"
)

var readCmd = &cobra.Command{
	Use:   "read <uri>",
	Short: "Read a resource and print its document",
	Long: `Read a resource by URI and print the decoded JSON document.

The tari:// scheme may be omitted:

  tari-mcp read wallet_balance
  tari-mcp read tari://mining_status`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	uri := args[0]
	if !strings.Contains(uri, "://") {
		uri = "tari://" + uri
	}

	return runWithClient(cmd.Context(), func(ctx context.Context, c universemcp.Client) error {
		doc, err := c.ReadResource(ctx, uri)
		if err != nil {
			return err
		}

		return printJSON(doc)
	})
}
