package universemcp

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tari-tools/universe-mcp-go/internal/servertest"
)

// TestHelperProcess is not a real test: when re-executed with the helper
// marker it serves the fake Tari Universe protocol on its stdio, standing
// in for the real executable.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	var cfg servertest.Config
	if raw := os.Getenv("FAKE_UNIVERSE_CFG"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			os.Exit(2)
		}
	}

	if err := servertest.Serve(os.Stdin, os.Stdout, cfg); err != nil {
		os.Exit(1)
	}

	os.Exit(0)
}

// startFakeUniverse starts a client against a re-executed test binary
// serving the fake protocol.
func startFakeUniverse(t *testing.T, cfg servertest.Config, extra ...Option) Client {
	t.Helper()

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)

	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("FAKE_UNIVERSE_CFG", string(raw))

	opts := append([]Option{
		WithServerPath(os.Args[0]),
		WithArgs("-test.run=TestHelperProcess", "--"),
		WithReadTimeout(5 * time.Second),
		WithCloseGrace(2 * time.Second),
	}, extra...)

	client := NewClient()
	require.NoError(t, client.Start(context.Background(), opts...))
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestStartAndPing(t *testing.T) {
	client := startFakeUniverse(t, servertest.Config{NotifyOnStart: true})

	require.NoError(t, client.Ping(context.Background()))
}

func TestStartTwice(t *testing.T) {
	client := startFakeUniverse(t, servertest.Config{})

	err := client.Start(context.Background(), WithServerPath(os.Args[0]))
	require.ErrorIs(t, err, ErrClientAlreadyStarted)
}

func TestListToolsEndToEnd(t *testing.T) {
	client := startFakeUniverse(t, servertest.Config{
		Tools: []servertest.Tool{
			{
				Name:        "start_cpu_mining",
				Description: "Start CPU mining",
				InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
			},
		},
	})

	tools, err := client.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, "start_cpu_mining", tools[0].Name)
}

func TestListResourcesEndToEnd(t *testing.T) {
	client := startFakeUniverse(t, servertest.Config{
		Resources: []servertest.Resource{
			{URI: ResourceWalletBalance, Name: "wallet_balance", MIMEType: "application/json"},
			{URI: ResourceMiningStatus, Name: "mining_status", MIMEType: "application/json"},
		},
	})

	resources, err := client.ListResources(context.Background())
	require.NoError(t, err)
	require.Len(t, resources, 2)
	require.Equal(t, ResourceWalletBalance, resources[0].URI)
}

func TestReadTypedResourceEndToEnd(t *testing.T) {
	client := startFakeUniverse(t, servertest.Config{
		Documents: map[string]any{
			ResourceWalletBalance: map[string]any{
				"available_balance": 1000000,
				"balance_formatted": map[string]any{"available": "1.000000 tXTR"},
			},
		},
	})

	balance, err := client.WalletBalance(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(1000000), balance.AvailableBalance)
	require.Equal(t, "1.000000 tXTR", balance.Formatted.Available)
}

func TestReadUnknownResourceDegradesToEmpty(t *testing.T) {
	client := startFakeUniverse(t, servertest.Config{})

	doc, err := client.ReadResource(context.Background(), "tari://no_such_resource")
	require.NoError(t, err)
	require.Empty(t, doc)
}

func TestCallToolEndToEnd(t *testing.T) {
	client := startFakeUniverse(t, servertest.Config{EchoToolCalls: true})

	resp, err := client.CallTool(context.Background(), ToolSetMiningMode, map[string]any{"mode": MiningModeEco})
	require.NoError(t, err)
	require.Nil(t, resp.Error)

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	require.NoError(t, resp.UnmarshalResult(&result))
	require.Contains(t, result.Content[0].Text, ToolSetMiningMode)
	require.Contains(t, result.Content[0].Text, `"mode":"Eco"`)
}

func TestCallToolErrorReplyEndToEnd(t *testing.T) {
	// No handler and no echo: every tool is unknown. The error reply is
	// data, not a client failure.
	client := startFakeUniverse(t, servertest.Config{})

	resp, err := client.CallTool(context.Background(), "frobnicate", nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	require.Equal(t, -32601, resp.Error.Code)

	// The client survives the error reply.
	require.NoError(t, client.Ping(context.Background()))
}

func TestHandshakeFailureEndToEnd(t *testing.T) {
	raw, err := json.Marshal(servertest.Config{
		Errors: map[string]*servertest.Error{
			"initialize": {Code: -32603, Message: "MCP feature disabled"},
		},
	})
	require.NoError(t, err)

	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("FAKE_UNIVERSE_CFG", string(raw))

	client := NewClient()
	err = client.Start(context.Background(),
		WithServerPath(os.Args[0]),
		WithArgs("-test.run=TestHelperProcess", "--"),
		WithReadTimeout(5*time.Second),
	)

	var handshake *HandshakeError
	require.ErrorAs(t, err, &handshake)
}

func TestUnstartedClientErrors(t *testing.T) {
	client := NewClient()

	_, err := client.ListTools(context.Background())
	require.ErrorIs(t, err, ErrClientNotStarted)

	_, err = client.ReadResource(context.Background(), ResourceWalletBalance)
	require.ErrorIs(t, err, ErrClientNotStarted)

	require.ErrorIs(t, client.Ping(context.Background()), ErrClientNotStarted)

	require.NoError(t, client.Close())
}

func TestStartUnknownBinary(t *testing.T) {
	client := NewClient()

	err := client.Start(context.Background(), WithServerPath("/nonexistent/tari-universe"))

	var launch *LaunchError
	require.ErrorAs(t, err, &launch)
}

func TestCloseIsIdempotentEndToEnd(t *testing.T) {
	client := startFakeUniverse(t, servertest.Config{})

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	_, err := client.ListTools(context.Background())
	require.ErrorIs(t, err, ErrClientClosed)
}
