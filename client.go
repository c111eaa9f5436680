package universemcp

import "context"

// Client is a connection to a Tari Universe instance running as an MCP
// server over its stdio pipes.
//
// The protocol is strictly synchronous: issue one call at a time and wait
// for it to return before the next. Clients are single-use; after Close(),
// create a new one with NewClient().
//
// Example usage:
//
//	client := universemcp.NewClient()
//	defer client.Close()
//
//	err := client.Start(ctx,
//	    universemcp.WithServerPath("/usr/bin/tari-universe"),
//	    universemcp.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	balance, err := client.WalletBalance(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(balance.Formatted.Available)
type Client interface {
	// Start launches the server process and performs the initialize
	// handshake. Must be called before any other method.
	// Returns LaunchError if the process cannot be spawned and
	// HandshakeError if the initialize exchange fails.
	Start(ctx context.Context, opts ...Option) error

	// ListResources returns the resources the server advertises.
	ListResources(ctx context.Context) ([]*Resource, error)

	// ListTools returns the tools the server advertises.
	ListTools(ctx context.Context) ([]*Tool, error)

	// ReadResource reads uri and decodes its JSON document. Replies that
	// carry no decodable document yield an empty Document, not an error.
	ReadResource(ctx context.Context, uri string) (Document, error)

	// CallTool invokes a tool by name. The response is returned raw, error
	// member included: a failed tool call is data, not a client failure.
	CallTool(ctx context.Context, name string, arguments map[string]any) (*Response, error)

	// Ping checks that the server is responsive.
	Ping(ctx context.Context) error

	// Typed readers for the well-known resources. Each is ReadResource
	// plus decoding into the resource's document type.
	WalletBalance(ctx context.Context) (*WalletBalance, error)
	WalletAddress(ctx context.Context) (*WalletAddress, error)
	TransactionHistory(ctx context.Context) (*TransactionHistory, error)
	CoinbaseTransactions(ctx context.Context) (*CoinbaseTransactions, error)
	MiningStatus(ctx context.Context) (*MiningStatus, error)
	MiningConfig(ctx context.Context) (*MiningConfig, error)
	HardwareInfo(ctx context.Context) (*HardwareInfo, error)
	P2PoolStats(ctx context.Context) (*P2PoolStats, error)
	NodeStatus(ctx context.Context) (*NodeStatus, error)
	NetworkStats(ctx context.Context) (*NetworkStats, error)
	AppState(ctx context.Context) (*AppState, error)

	// Close terminates the server process, waiting briefly for a graceful
	// exit before killing it. Safe to call multiple times and safe to call
	// while a call is blocked; the blocked call returns
	// TransportClosedError.
	Close() error
}

// NewClient creates a new, unstarted client.
//
// Call Start() with options to launch the server:
//
//	client := universemcp.NewClient()
//	err := client.Start(ctx,
//	    universemcp.WithServerPath("/usr/bin/tari-universe"),
//	)
func NewClient() Client {
	return newClientImpl()
}
