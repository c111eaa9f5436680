package universemcp

import (
	"log/slog"
	"time"

	"github.com/tari-tools/universe-mcp-go/internal/config"
)

// Option configures a client using the functional options pattern.
type Option func(*config.Options)

// applyOptions applies functional options to a fresh option set.
func applyOptions(opts []Option) *config.Options {
	options := &config.Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *config.Options) {
		o.Logger = logger
	}
}

// WithServerPath sets the path to the Tari Universe executable.
func WithServerPath(path string) Option {
	return func(o *config.Options) {
		o.ServerPath = path
	}
}

// WithArgs overrides the launch arguments passed to the server process.
// The default is a single "--mcp" flag.
func WithArgs(args ...string) Option {
	return func(o *config.Options) {
		o.Args = args
	}
}

// WithClientInfo sets the name and version this client reports in the
// initialize handshake.
func WithClientInfo(name, version string) Option {
	return func(o *config.Options) {
		o.ClientName = name
		o.ClientVersion = version
	}
}

// WithReadTimeout bounds how long a call waits for its response record.
// Zero (the default) waits indefinitely. When the timeout expires the call
// returns TransportClosedError and the client must be closed.
func WithReadTimeout(d time.Duration) Option {
	return func(o *config.Options) {
		o.ReadTimeout = d
	}
}

// WithCloseGrace sets how long Close waits for the server to exit
// gracefully before killing it.
func WithCloseGrace(d time.Duration) Option {
	return func(o *config.Options) {
		o.CloseGrace = d
	}
}

// WithAudit records every tool invocation to sink, typically an
// audit.Recorder.
func WithAudit(sink AuditSink) Option {
	return func(o *config.Options) {
		o.Audit = sink
	}
}
