// Package events consumes the live event stream Tari Universe exposes over
// a local WebSocket, one port above the MCP port.
//
// The stream complements polling: instead of re-reading resources, a client
// subscribes once and receives wallet, mining, node, and application events
// as they happen.
package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event categories accepted in a subscription filter.
const (
	CategoryAll    = "all"
	CategoryWallet = "wallet"
	CategoryMining = "mining"
	CategoryNode   = "node"
	CategoryP2Pool = "p2pool"
	CategoryApp    = "app"
)

// Event types carried on the stream.
const (
	TypeWalletBalanceChanged    = "wallet.balance_changed"
	TypeWalletTransactionUpdate = "wallet.transaction_update"
	TypeMiningStatusChanged     = "mining.status_changed"
	TypeMiningModeChanged       = "mining.mode_changed"
	TypeBlockFound              = "mining.block_found"
	TypeNodeSyncStatusChanged   = "node.sync_status_changed"
	TypeNodeConnectionChanged   = "node.connection_changed"
	TypeP2PoolStatsUpdate       = "p2pool.stats_update"
	TypeAppConfigChanged        = "app.config_changed"
	TypeAppError                = "app.error"
	TypeAppStatusUpdate         = "app.status_update"
)

// Filter selects which events a subscription receives. The zero value must
// not be sent; use DefaultFilter or fill the fields explicitly.
type Filter struct {
	// Categories to include. "all" includes everything.
	Categories []string `json:"categories"`

	// EventTypes restricts to specific types within the categories. Empty
	// means every type in the selected categories.
	EventTypes []string `json:"event_types"`

	// MinSeverity applies to app.error events only: "info", "warning", or
	// "error".
	MinSeverity string `json:"min_severity,omitempty"`
}

// DefaultFilter subscribes to every event.
func DefaultFilter() Filter {
	return Filter{
		Categories:  []string{CategoryAll},
		EventTypes:  []string{},
		MinSeverity: "info",
	}
}

// StreamEvent is one event received from the server.
type StreamEvent struct {
	ID        string          `json:"id"`
	Timestamp uint64          `json:"timestamp"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
}

// DecodeData unmarshals the event payload into v.
func (e StreamEvent) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("event %s has no payload", e.Type)
	}

	return json.Unmarshal(e.Data, v)
}

// Time converts the event's unix timestamp.
func (e StreamEvent) Time() time.Time {
	return time.Unix(int64(e.Timestamp), 0)
}

// BalanceChanged is the wallet.balance_changed payload. Amounts are
// formatted tXTR strings.
type BalanceChanged struct {
	Available  string `json:"available"`
	Timelocked string `json:"timelocked"`
	Total      string `json:"total"`
}

// TransactionUpdate is the wallet.transaction_update payload.
type TransactionUpdate struct {
	TxID              string `json:"tx_id"`
	Direction         string `json:"direction"`
	Amount            string `json:"amount"`
	Status            string `json:"status"`
	ConfirmationCount uint64 `json:"confirmation_count"`
	Timestamp         uint64 `json:"timestamp"`
}

// MiningStatusChanged is the mining.status_changed payload.
type MiningStatusChanged struct {
	CPUMining      bool      `json:"cpu_mining"`
	GPUMining      bool      `json:"gpu_mining"`
	Mode           string    `json:"mode"`
	CPUUtilization float64   `json:"cpu_utilization"`
	GPUUtilization []float64 `json:"gpu_utilization"`
}

// MiningModeChanged is the mining.mode_changed payload.
type MiningModeChanged struct {
	PreviousMode string `json:"previous_mode"`
	NewMode      string `json:"new_mode"`
	Timestamp    uint64 `json:"timestamp"`
}

// BlockFound is the mining.block_found payload.
type BlockFound struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	Reward    string `json:"reward"`
	Timestamp uint64 `json:"timestamp"`
}

// SyncStatusChanged is the node.sync_status_changed payload.
type SyncStatusChanged struct {
	IsSynced       bool    `json:"is_synced"`
	SyncProgress   float64 `json:"sync_progress"`
	Height         uint64  `json:"height"`
	NetworkHeight  uint64  `json:"network_height"`
	NumConnections int     `json:"num_connections"`
}

// ConnectionChanged is the node.connection_changed payload.
type ConnectionChanged struct {
	Connected bool   `json:"connected"`
	PeerCount int    `json:"peer_count"`
	Network   string `json:"network"`
}

// P2PoolStatsUpdate is the p2pool.stats_update payload.
type P2PoolStatsUpdate struct {
	HashRate        uint64 `json:"hash_rate"`
	ShareCount      uint64 `json:"share_count"`
	PoolHashRate    uint64 `json:"pool_hash_rate"`
	ConnectedMiners uint32 `json:"connected_miners"`
}

// AppError is the app.error payload.
type AppError struct {
	Severity  string          `json:"severity"`
	Component string          `json:"component"`
	Message   string          `json:"message"`
	Details   json.RawMessage `json:"details,omitempty"`
}
