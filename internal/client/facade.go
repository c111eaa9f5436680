package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tari-tools/universe-mcp-go/internal/config"
	"github.com/tari-tools/universe-mcp-go/internal/errors"
	"github.com/tari-tools/universe-mcp-go/internal/jsonrpc"
	"github.com/tari-tools/universe-mcp-go/internal/tari"
)

// Methods understood by the Tari Universe MCP server.
const (
	methodResourcesList = "resources/list"
	methodResourcesRead = "resources/read"
	methodToolsList     = "tools/list"
	methodToolsCall     = "tools/call"
	methodPing          = "ping"
)

// Caller is the slice of the rpc client the façade needs.
type Caller interface {
	Call(ctx context.Context, method string, params any) (*jsonrpc.Response, error)
}

// Facade exposes semantically named operations over a Caller.
type Facade struct {
	log   *slog.Logger
	rpc   Caller
	audit config.AuditSink
}

// New creates a façade over rpc.
func New(log *slog.Logger, rpc Caller, options *config.Options) *Facade {
	return &Facade{
		log:   log.With("component", "facade"),
		rpc:   rpc,
		audit: options.Audit,
	}
}

// ListResources returns the resources the server advertises.
func (f *Facade) ListResources(ctx context.Context) ([]*mcp.Resource, error) {
	resp, err := f.rpc.Call(ctx, methodResourcesList, map[string]any{})
	if err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, &errors.RemoteError{Code: resp.Error.Code, Message: resp.Error.Message}
	}

	var result struct {
		Resources []*mcp.Resource `json:"resources"`
	}

	if err := resp.UnmarshalResult(&result); err != nil {
		return nil, err
	}

	return result.Resources, nil
}

// ListTools returns the tools the server advertises, input schemas decoded.
func (f *Facade) ListTools(ctx context.Context) ([]*mcp.Tool, error) {
	resp, err := f.rpc.Call(ctx, methodToolsList, map[string]any{})
	if err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, &errors.RemoteError{Code: resp.Error.Code, Message: resp.Error.Message}
	}

	var result struct {
		Tools []*mcp.Tool `json:"tools"`
	}

	if err := resp.UnmarshalResult(&result); err != nil {
		return nil, err
	}

	return result.Tools, nil
}

// resourceContents is the envelope a resources/read result carries.
type resourceContents struct {
	Contents []struct {
		URI      string `json:"uri"`
		MIMEType string `json:"mimeType"`
		Text     string `json:"text"`
	} `json:"contents"`
}

// ReadResource reads uri and decodes the first content item's text payload
// as a JSON document.
//
// Replies without a result, without content, or with text that does not
// decode all return an empty document and no error. Only transport-level
// failures from the rpc client propagate.
func (f *Facade) ReadResource(ctx context.Context, uri string) (tari.Document, error) {
	resp, err := f.rpc.Call(ctx, methodResourcesRead, map[string]any{"uri": uri})
	if err != nil {
		return nil, err
	}

	if resp.Error != nil || resp.Result == nil {
		f.log.Debug("Resource read returned no result", "uri", uri)

		return tari.Document{}, nil
	}

	var envelope resourceContents
	if err := resp.UnmarshalResult(&envelope); err != nil {
		f.log.Debug("Resource envelope did not decode", "uri", uri, "error", err)

		return tari.Document{}, nil
	}

	if len(envelope.Contents) == 0 {
		return tari.Document{}, nil
	}

	var doc tari.Document
	if err := json.Unmarshal([]byte(envelope.Contents[0].Text), &doc); err != nil {
		f.log.Debug("Resource document did not decode", "uri", uri, "error", err)

		return tari.Document{}, nil
	}

	return doc, nil
}

// CallTool invokes a tool and returns the raw response. Both result and
// error variants are meaningful to the caller: a tool call can legitimately
// fail and the caller decides how to react.
func (f *Facade) CallTool(ctx context.Context, name string, arguments map[string]any) (*jsonrpc.Response, error) {
	if arguments == nil {
		arguments = map[string]any{}
	}

	params := map[string]any{
		"name":      name,
		"arguments": arguments,
	}

	start := time.Now()

	resp, err := f.rpc.Call(ctx, methodToolsCall, params)
	if err != nil {
		return nil, err
	}

	f.recordToolCall(ctx, name, arguments, resp, time.Since(start))

	return resp, nil
}

// recordToolCall forwards the invocation to the audit sink, if configured.
// Audit failures are logged, never propagated.
func (f *Facade) recordToolCall(
	ctx context.Context,
	name string,
	arguments map[string]any,
	resp *jsonrpc.Response,
	elapsed time.Duration,
) {
	if f.audit == nil {
		return
	}

	args, err := json.Marshal(arguments)
	if err != nil {
		args = nil
	}

	rec := config.ToolCallRecord{
		Tool:      name,
		Arguments: args,
		Duration:  elapsed,
	}

	if resp.Error != nil {
		rec.RemoteErr = resp.Error.Message
	} else {
		rec.Result = resp.Result
	}

	if err := f.audit.RecordToolCall(ctx, rec); err != nil {
		f.log.Warn("Failed to record tool call", "tool", name, "error", err)
	}
}

// Ping checks server liveness.
func (f *Facade) Ping(ctx context.Context) error {
	resp, err := f.rpc.Call(ctx, methodPing, map[string]any{})
	if err != nil {
		return err
	}

	if resp.Error != nil {
		return &errors.RemoteError{Code: resp.Error.Code, Message: resp.Error.Message}
	}

	return nil
}

// readAs reads a well-known resource and decodes its document into T.
// An empty document decodes to the zero value, carrying the degrade-to-empty
// policy through to the typed helpers.
func readAs[T any](ctx context.Context, f *Facade, uri string) (*T, error) {
	doc, err := f.ReadResource(ctx, uri)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return new(T), nil
	}

	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		f.log.Debug("Typed resource decode failed", "uri", uri, "error", err)

		return new(T), nil
	}

	return out, nil
}

// WalletBalance reads tari://wallet_balance.
func (f *Facade) WalletBalance(ctx context.Context) (*tari.WalletBalance, error) {
	return readAs[tari.WalletBalance](ctx, f, tari.ResourceWalletBalance)
}

// WalletAddress reads tari://wallet_address.
func (f *Facade) WalletAddress(ctx context.Context) (*tari.WalletAddress, error) {
	return readAs[tari.WalletAddress](ctx, f, tari.ResourceWalletAddress)
}

// TransactionHistory reads tari://transaction_history.
func (f *Facade) TransactionHistory(ctx context.Context) (*tari.TransactionHistory, error) {
	return readAs[tari.TransactionHistory](ctx, f, tari.ResourceTransactionHistory)
}

// CoinbaseTransactions reads tari://coinbase_transactions.
func (f *Facade) CoinbaseTransactions(ctx context.Context) (*tari.CoinbaseTransactions, error) {
	return readAs[tari.CoinbaseTransactions](ctx, f, tari.ResourceCoinbaseTransactions)
}

// MiningStatus reads tari://mining_status.
func (f *Facade) MiningStatus(ctx context.Context) (*tari.MiningStatus, error) {
	return readAs[tari.MiningStatus](ctx, f, tari.ResourceMiningStatus)
}

// MiningConfig reads tari://mining_config.
func (f *Facade) MiningConfig(ctx context.Context) (*tari.MiningConfig, error) {
	return readAs[tari.MiningConfig](ctx, f, tari.ResourceMiningConfig)
}

// HardwareInfo reads tari://hardware_info.
func (f *Facade) HardwareInfo(ctx context.Context) (*tari.HardwareInfo, error) {
	return readAs[tari.HardwareInfo](ctx, f, tari.ResourceHardwareInfo)
}

// P2PoolStats reads tari://p2pool_stats.
func (f *Facade) P2PoolStats(ctx context.Context) (*tari.P2PoolStats, error) {
	return readAs[tari.P2PoolStats](ctx, f, tari.ResourceP2PoolStats)
}

// NodeStatus reads tari://node_status.
func (f *Facade) NodeStatus(ctx context.Context) (*tari.NodeStatus, error) {
	return readAs[tari.NodeStatus](ctx, f, tari.ResourceNodeStatus)
}

// NetworkStats reads tari://network_stats.
func (f *Facade) NetworkStats(ctx context.Context) (*tari.NetworkStats, error) {
	return readAs[tari.NetworkStats](ctx, f, tari.ResourceNetworkStats)
}

// AppState reads tari://app_state.
func (f *Facade) AppState(ctx context.Context) (*tari.AppState, error) {
	return readAs[tari.AppState](ctx, f, tari.ResourceAppState)
}
