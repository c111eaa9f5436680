package universemcp

import (
	"context"

	"github.com/tari-tools/universe-mcp-go/internal/client"
	"github.com/tari-tools/universe-mcp-go/internal/errors"
	"github.com/tari-tools/universe-mcp-go/internal/rpc"
)

// clientWrapper wires the transport client and the capability façade behind
// the public interface.
type clientWrapper struct {
	rpc    *rpc.Client
	facade *client.Facade
}

// Compile-time check that *clientWrapper implements the Client interface.
var _ Client = (*clientWrapper)(nil)

// newClientImpl creates the internal client implementation.
func newClientImpl() Client {
	return &clientWrapper{}
}

// Start launches the server process and performs the initialize handshake.
func (c *clientWrapper) Start(ctx context.Context, opts ...Option) error {
	if c.rpc != nil {
		return errors.ErrClientAlreadyStarted
	}

	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	r := rpc.New(log, options)
	if err := r.Start(ctx); err != nil {
		return err
	}

	c.rpc = r
	c.facade = client.New(log, r, options)

	return nil
}

// checkStarted guards the operations that need a running transport.
func (c *clientWrapper) checkStarted() error {
	if c.facade == nil {
		return errors.ErrClientNotStarted
	}

	return nil
}

// ListResources returns the resources the server advertises.
func (c *clientWrapper) ListResources(ctx context.Context) ([]*Resource, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.ListResources(ctx)
}

// ListTools returns the tools the server advertises.
func (c *clientWrapper) ListTools(ctx context.Context) ([]*Tool, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.ListTools(ctx)
}

// ReadResource reads uri and decodes its JSON document.
func (c *clientWrapper) ReadResource(ctx context.Context, uri string) (Document, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.ReadResource(ctx, uri)
}

// CallTool invokes a tool by name.
func (c *clientWrapper) CallTool(ctx context.Context, name string, arguments map[string]any) (*Response, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.CallTool(ctx, name, arguments)
}

// Ping checks that the server is responsive.
func (c *clientWrapper) Ping(ctx context.Context) error {
	if err := c.checkStarted(); err != nil {
		return err
	}

	return c.facade.Ping(ctx)
}

// WalletBalance reads the wallet balance document.
func (c *clientWrapper) WalletBalance(ctx context.Context) (*WalletBalance, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.WalletBalance(ctx)
}

// WalletAddress reads the wallet address document.
func (c *clientWrapper) WalletAddress(ctx context.Context) (*WalletAddress, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.WalletAddress(ctx)
}

// TransactionHistory reads the transaction history document.
func (c *clientWrapper) TransactionHistory(ctx context.Context) (*TransactionHistory, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.TransactionHistory(ctx)
}

// CoinbaseTransactions reads the mining rewards document.
func (c *clientWrapper) CoinbaseTransactions(ctx context.Context) (*CoinbaseTransactions, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.CoinbaseTransactions(ctx)
}

// MiningStatus reads the mining status document.
func (c *clientWrapper) MiningStatus(ctx context.Context) (*MiningStatus, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.MiningStatus(ctx)
}

// MiningConfig reads the mining configuration document.
func (c *clientWrapper) MiningConfig(ctx context.Context) (*MiningConfig, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.MiningConfig(ctx)
}

// HardwareInfo reads the hardware capabilities document.
func (c *clientWrapper) HardwareInfo(ctx context.Context) (*HardwareInfo, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.HardwareInfo(ctx)
}

// P2PoolStats reads the P2Pool statistics document.
func (c *clientWrapper) P2PoolStats(ctx context.Context) (*P2PoolStats, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.P2PoolStats(ctx)
}

// NodeStatus reads the base node status document.
func (c *clientWrapper) NodeStatus(ctx context.Context) (*NodeStatus, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.NodeStatus(ctx)
}

// NetworkStats reads the network statistics document.
func (c *clientWrapper) NetworkStats(ctx context.Context) (*NetworkStats, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.NetworkStats(ctx)
}

// AppState reads the application state document.
func (c *clientWrapper) AppState(ctx context.Context) (*AppState, error) {
	if err := c.checkStarted(); err != nil {
		return nil, err
	}

	return c.facade.AppState(ctx)
}

// Close terminates the server process.
func (c *clientWrapper) Close() error {
	if c.rpc == nil {
		return nil
	}

	return c.rpc.Close()
}
