// Package universemcp provides a Go client for the Tari Universe MCP
// server.
//
// Tari Universe, when launched with its MCP flag, exposes wallet, mining,
// and node state over newline-delimited JSON-RPC on its stdio pipes. This
// package launches the process, performs the initialize handshake, and
// offers both raw JSON-RPC access and typed operations for the well-known
// resources and tools.
//
// # Basic Usage
//
// Use WithClient for automatic lifecycle management:
//
//	err := universemcp.WithClient(ctx, func(c universemcp.Client) error {
//	    balance, err := c.WalletBalance(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(balance.Formatted.Available)
//	    return nil
//	},
//	    universemcp.WithServerPath("/usr/bin/tari-universe"),
//	)
//
// Or manage the lifecycle yourself with NewClient:
//
//	client := universemcp.NewClient()
//	defer client.Close()
//
//	if err := client.Start(ctx,
//	    universemcp.WithServerPath("/usr/bin/tari-universe"),
//	    universemcp.WithLogger(slog.Default()),
//	); err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.CallTool(ctx, universemcp.ToolStartCPUMining, nil)
//
// # Concurrency
//
// The protocol is strictly synchronous: one request is in flight at a
// time. Calls from multiple goroutines are serialized, but interleaving
// them is a misuse of the protocol rather than a supported mode. Close()
// is the one method that is always safe concurrently; it unblocks a
// pending call by terminating the server process.
//
// # Errors
//
// Transport-level failures (LaunchError, HandshakeError,
// TransportClosedError, MalformedResponseError) are fatal: discard the
// client and start a new one. RemoteError and a tool response's Error
// member are domain-level and leave the client usable.
//
// The audit subpackage persists tool invocations to SQLite; the events
// subpackage subscribes to the server's live WebSocket event stream.
package universemcp
