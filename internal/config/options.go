// Package config holds the resolved option set shared across the SDK's
// internal packages.
package config

import (
	"context"
	"log/slog"
	"time"
)

// Default timing knobs.
const (
	// DefaultCloseGrace is how long Close waits for a graceful exit before
	// escalating to a forceful kill.
	DefaultCloseGrace = 5 * time.Second
)

// ToolCallRecord describes one completed tool invocation for audit purposes.
type ToolCallRecord struct {
	Tool      string
	Arguments []byte
	Result    []byte
	RemoteErr string
	Duration  time.Duration
}

// AuditSink receives tool invocation records. Implemented by audit.Recorder.
type AuditSink interface {
	RecordToolCall(ctx context.Context, rec ToolCallRecord) error
}

// Options is the resolved configuration for a client.
type Options struct {
	// Logger receives debug, info, warn, and error messages. Nil disables
	// logging.
	Logger *slog.Logger

	// ServerPath is the path to the Tari Universe executable.
	ServerPath string

	// Args are the launch arguments passed to the server process.
	Args []string

	// ClientName and ClientVersion identify this client in the initialize
	// handshake.
	ClientName    string
	ClientVersion string

	// ReadTimeout bounds the blocking read for a response record. Zero means
	// unbounded, matching the baseline protocol: a silent server stalls the
	// caller indefinitely.
	ReadTimeout time.Duration

	// CloseGrace bounds the graceful-termination wait in Close.
	CloseGrace time.Duration

	// Audit, when set, records every tool invocation.
	Audit AuditSink
}

// Normalize fills defaults for unset fields.
func (o *Options) Normalize() {
	if o.Args == nil {
		o.Args = []string{"--mcp"}
	}

	if o.ClientName == "" {
		o.ClientName = "universe-mcp-go"
	}

	if o.ClientVersion == "" {
		o.ClientVersion = "0.1.0"
	}

	if o.CloseGrace <= 0 {
		o.CloseGrace = DefaultCloseGrace
	}
}
