package universemcp

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tari-tools/universe-mcp-go/internal/config"
	"github.com/tari-tools/universe-mcp-go/internal/jsonrpc"
	"github.com/tari-tools/universe-mcp-go/internal/tari"
)

// Re-export the wire and descriptor types callers handle directly.

// Resource describes one resource the server advertises.
type Resource = mcp.Resource

// Tool describes one tool the server advertises, input schema included.
type Tool = mcp.Tool

// ToolSchema is the decoded input schema of a Tool.
type ToolSchema = jsonschema.Schema

// Response is the raw JSON-RPC response a tool call returns. Exactly one
// of Result and Error is meaningful.
type Response = jsonrpc.Response

// ResponseError is the error member of a Response.
type ResponseError = jsonrpc.Error

// AuditSink receives a record of every tool invocation.
type AuditSink = config.AuditSink

// ToolCallRecord describes one completed tool invocation.
type ToolCallRecord = config.ToolCallRecord

// Document is a decoded resource payload.
type Document = tari.Document

// Typed documents for the well-known resources.
type (
	WalletBalance        = tari.WalletBalance
	WalletAddress        = tari.WalletAddress
	Transaction          = tari.Transaction
	TransactionHistory   = tari.TransactionHistory
	CoinbaseTransactions = tari.CoinbaseTransactions
	MiningStatus         = tari.MiningStatus
	MiningConfig         = tari.MiningConfig
	HardwareInfo         = tari.HardwareInfo
	P2PoolStats          = tari.P2PoolStats
	NodeStatus           = tari.NodeStatus
	NetworkStats         = tari.NetworkStats
	AppState             = tari.AppState
)

// Resource URIs registered by the Tari Universe server.
const (
	ResourceWalletBalance        = tari.ResourceWalletBalance
	ResourceWalletAddress        = tari.ResourceWalletAddress
	ResourceTransactionHistory   = tari.ResourceTransactionHistory
	ResourceCoinbaseTransactions = tari.ResourceCoinbaseTransactions
	ResourceMiningStatus         = tari.ResourceMiningStatus
	ResourceMiningConfig         = tari.ResourceMiningConfig
	ResourceHardwareInfo         = tari.ResourceHardwareInfo
	ResourceP2PoolStats          = tari.ResourceP2PoolStats
	ResourceAppState             = tari.ResourceAppState
	ResourceNodeStatus           = tari.ResourceNodeStatus
	ResourceNetworkStats         = tari.ResourceNetworkStats
	ResourceExternalDependencies = tari.ResourceExternalDependencies
)

// Tool names registered by the Tari Universe server.
const (
	ToolStartCPUMining      = tari.ToolStartCPUMining
	ToolStopCPUMining       = tari.ToolStopCPUMining
	ToolStartGPUMining      = tari.ToolStartGPUMining
	ToolStopGPUMining       = tari.ToolStopGPUMining
	ToolSetMiningMode       = tari.ToolSetMiningMode
	ToolGetMiningConfig     = tari.ToolGetMiningConfig
	ToolSetCPUMiningEnabled = tari.ToolSetCPUMiningEnabled
	ToolSetGPUMiningEnabled = tari.ToolSetGPUMiningEnabled
	ToolGetAppSettings      = tari.ToolGetAppSettings
	ToolValidateAddress     = tari.ToolValidateAddress
	ToolSendTari            = tari.ToolSendTari
)

// Mining modes accepted by set_mining_mode.
const (
	MiningModeEco       = tari.MiningModeEco
	MiningModeLudicrous = tari.MiningModeLudicrous
	MiningModeCustom    = tari.MiningModeCustom
)
