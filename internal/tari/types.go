// Package tari defines the resource and tool vocabulary of the Tari
// Universe MCP server and the typed documents its resources serialize.
package tari

// Resource URIs registered by the server. Reading one returns a JSON
// document nested inside the MCP resource-content envelope.
const (
	ResourceWalletBalance        = "tari://wallet_balance"
	ResourceWalletAddress        = "tari://wallet_address"
	ResourceTransactionHistory   = "tari://transaction_history"
	ResourceCoinbaseTransactions = "tari://coinbase_transactions"
	ResourceMiningStatus         = "tari://mining_status"
	ResourceMiningConfig         = "tari://mining_config"
	ResourceHardwareInfo         = "tari://hardware_info"
	ResourceP2PoolStats          = "tari://p2pool_stats"
	ResourceAppState             = "tari://app_state"
	ResourceNodeStatus           = "tari://node_status"
	ResourceNetworkStats         = "tari://network_stats"
	ResourceExternalDependencies = "tari://external_dependencies"
)

// Tool names registered by the server.
const (
	ToolStartCPUMining      = "start_cpu_mining"
	ToolStopCPUMining       = "stop_cpu_mining"
	ToolStartGPUMining      = "start_gpu_mining"
	ToolStopGPUMining       = "stop_gpu_mining"
	ToolSetMiningMode       = "set_mining_mode"
	ToolGetMiningConfig     = "get_mining_config"
	ToolSetCPUMiningEnabled = "set_cpu_mining_enabled"
	ToolSetGPUMiningEnabled = "set_gpu_mining_enabled"
	ToolGetAppSettings      = "get_app_settings"
	ToolValidateAddress     = "validate_address"
	ToolSendTari            = "send_tari"
)

// Mining modes accepted by set_mining_mode.
const (
	MiningModeEco       = "Eco"
	MiningModeLudicrous = "Ludicrous"
	MiningModeCustom    = "Custom"
)

// Document is a decoded resource payload. Resource reads that return no
// data decode to an empty Document.
type Document map[string]any

// FormattedBalance carries human-readable tXTR amounts.
type FormattedBalance struct {
	Available       string `json:"available"`
	Timelocked      string `json:"timelocked"`
	PendingIncoming string `json:"pending_incoming"`
	PendingOutgoing string `json:"pending_outgoing"`
}

// WalletBalance is the tari://wallet_balance document. Amounts are in
// microTari. Error is set when the wallet has not produced a balance yet.
type WalletBalance struct {
	AvailableBalance       uint64           `json:"available_balance"`
	TimelockedBalance      uint64           `json:"timelocked_balance"`
	PendingIncomingBalance uint64           `json:"pending_incoming_balance"`
	PendingOutgoingBalance uint64           `json:"pending_outgoing_balance"`
	Formatted              FormattedBalance `json:"balance_formatted"`
	Error                  string           `json:"error,omitempty"`
}

// WalletAddress is the tari://wallet_address document.
type WalletAddress struct {
	AddressBase58 string `json:"address_base58"`
	AddressEmoji  string `json:"address_emoji"`
	Network       string `json:"network"`
	Features      string `json:"features"`
}

// Transaction is one entry of the transaction history documents.
type Transaction struct {
	TxID            uint64 `json:"tx_id"`
	SourceAddress   string `json:"source_address"`
	DestAddress     string `json:"dest_address"`
	Status          string `json:"status"`
	Direction       string `json:"direction,omitempty"`
	Amount          uint64 `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
	Fee             uint64 `json:"fee"`
	FeeFormatted    string `json:"fee_formatted"`
	Timestamp       uint64 `json:"timestamp"`
	PaymentID       string `json:"payment_id"`
	Cancelled       bool   `json:"cancelled,omitempty"`
	MinedHeight     uint64 `json:"mined_height,omitempty"`
}

// TransactionHistory is the tari://transaction_history document.
type TransactionHistory struct {
	Transactions []Transaction `json:"transactions"`
	Count        int           `json:"count"`
}

// CoinbaseTransactions is the tari://coinbase_transactions document
// (mining rewards).
type CoinbaseTransactions struct {
	Transactions []Transaction `json:"coinbase_transactions"`
	Count        int           `json:"count"`
	TotalMined   uint64        `json:"total_mined"`
}

// MinerStatus describes one miner (CPU or GPU).
type MinerStatus struct {
	IsMining          bool    `json:"is_mining"`
	HashRate          float64 `json:"hash_rate"`
	EstimatedEarnings float64 `json:"estimated_earnings"`
	IsConnected       bool    `json:"is_connected,omitempty"`
}

// MiningOverall aggregates the per-miner figures.
type MiningOverall struct {
	AnyMining              bool    `json:"any_mining"`
	TotalHashRate          float64 `json:"total_hash_rate"`
	TotalEstimatedEarnings float64 `json:"total_estimated_earnings"`
}

// MiningStatus is the tari://mining_status document.
type MiningStatus struct {
	CPUMining MinerStatus   `json:"cpu_mining"`
	GPUMining MinerStatus   `json:"gpu_mining"`
	Overall   MiningOverall `json:"overall"`
}

// MiningConfig is the tari://mining_config document.
type MiningConfig struct {
	CPUMiningEnabled  bool   `json:"cpu_mining_enabled"`
	GPUMiningEnabled  bool   `json:"gpu_mining_enabled"`
	MiningMode        string `json:"mining_mode"`
	MineOnAppStart    bool   `json:"mine_on_app_start"`
	CustomMaxCPUUsage int    `json:"custom_max_cpu_usage"`
	CustomMaxGPUUsage int    `json:"custom_max_gpu_usage"`
	GPUEngine         string `json:"gpu_engine"`
	MiningTimeMS      uint64 `json:"mining_time_ms"`
}

// GPUDevice describes one GPU available for mining.
type GPUDevice struct {
	DeviceName  string `json:"device_name"`
	DeviceIndex int    `json:"device_index"`
	MaxThreads  int    `json:"max_threads"`
}

// HardwareInfo is the tari://hardware_info document.
type HardwareInfo struct {
	CPU struct {
		MaxThreads       int `json:"max_threads"`
		AvailableThreads int `json:"available_threads"`
	} `json:"cpu"`
	GPU struct {
		Devices     []GPUDevice `json:"devices"`
		DeviceCount int         `json:"device_count"`
		Available   bool        `json:"available"`
	} `json:"gpu"`
}

// P2PoolStats is the tari://p2pool_stats document. Stats is nil when
// P2Pool is disabled.
type P2PoolStats struct {
	IsEnabled bool `json:"is_enabled"`
	Stats     *struct {
		Connected    bool   `json:"connected"`
		PeerID       string `json:"peer_id"`
		Squad        string `json:"squad"`
		RandomXStats struct {
			Height uint64 `json:"height"`
		} `json:"randomx_stats"`
		Sha3xStats struct {
			Height uint64 `json:"height"`
		} `json:"sha3x_stats"`
	} `json:"stats"`
	Message string `json:"message,omitempty"`
}

// NodeStatus is the tari://node_status document.
type NodeStatus struct {
	IsConnected bool   `json:"is_connected"`
	BlockHeight uint64 `json:"block_height"`
	BlockTime   uint64 `json:"block_time"`
	PeerCount   int    `json:"peer_count"`
	IsSynced    bool   `json:"is_synced"`
	SyncStatus  string `json:"sync_status"`
}

// NetworkStats is the tari://network_stats document.
type NetworkStats struct {
	Network          string `json:"network"`
	UseTor           bool   `json:"use_tor"`
	P2PoolEnabled    bool   `json:"p2pool_enabled"`
	NodeType         string `json:"node_type"`
	ConnectionStatus struct {
		BaseNodeConnected  bool   `json:"base_node_connected"`
		PeerCount          int    `json:"peer_count"`
		CurrentBlockHeight uint64 `json:"current_block_height"`
	} `json:"connection_status"`
}

// AppState is the tari://app_state document.
type AppState struct {
	AirdropURL             string `json:"airdrop_url"`
	AirdropAPIURL          string `json:"airdrop_api_url"`
	TelemetryAPIURL        string `json:"telemetry_api_url"`
	ExchangeID             string `json:"exchange_id"`
	WalletConnectProjectID string `json:"wallet_connect_project_id"`
	IsUniversalMiner       bool   `json:"is_universal_miner"`
	MinerType              string `json:"miner_type"`
}
