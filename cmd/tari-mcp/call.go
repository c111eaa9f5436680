package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	universemcp "github.com/tari-tools/universe-mcp-go"
)

var (
	callArgs     []string
	callJSONArgs string
)

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a tool",
	Long: `Invoke a tool by name.

Arguments are passed as key=value pairs or as one JSON object:

  tari-mcp call set_mining_mode --arg mode=Eco
  tari-mcp call send_tari --json-args '{"destination":"f4...","amount":1000000,"payment_id":"rent"}'

Values that parse as JSON (numbers, booleans, objects) keep that type;
everything else stays a string.`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringArrayVar(&callArgs, "arg", nil, "Tool argument as key=value (repeatable)")
	callCmd.Flags().StringVar(&callJSONArgs, "json-args", "", "Tool arguments as a JSON object")

	rootCmd.AddCommand(callCmd)
}

func parseCallArguments() (map[string]any, error) {
	arguments := map[string]any{}

	if callJSONArgs != "" {
		if err := json.Unmarshal([]byte(callJSONArgs), &arguments); err != nil {
			return nil, fmt.Errorf("invalid --json-args: %w", err)
		}
	}

	for _, pair := range callArgs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --arg %q: want key=value", pair)
		}

		var typed any
		if err := json.Unmarshal([]byte(value), &typed); err == nil {
			arguments[key] = typed
		} else {
			arguments[key] = value
		}
	}

	return arguments, nil
}

func runCall(cmd *cobra.Command, args []string) error {
	arguments, err := parseCallArguments()
	if err != nil {
		return err
	}

	return runWithClient(cmd.Context(), func(ctx context.Context, c universemcp.Client) error {
		resp, err := c.CallTool(ctx, args[0], arguments)
		if err != nil {
			return err
		}

		if resp.Error != nil {
			return fmt.Errorf("tool failed: %s (code %d)", resp.Error.Message, resp.Error.Code)
		}

		var result any
		if err := resp.UnmarshalResult(&result); err != nil {
			return err
		}

		return printJSON(result)
	})
}
