package universemcp

import "github.com/tari-tools/universe-mcp-go/internal/errors"

// Re-export error types from internal package

// LaunchError indicates the server process could not be spawned.
type LaunchError = errors.LaunchError

// HandshakeError indicates the initialize exchange failed.
type HandshakeError = errors.HandshakeError

// TransportClosedError indicates the connection to the server broke.
type TransportClosedError = errors.TransportClosedError

// MalformedResponseError indicates the server wrote an undecodable record.
type MalformedResponseError = errors.MalformedResponseError

// RemoteError is a JSON-RPC error the server returned for a request.
type RemoteError = errors.RemoteError

// SDKError is the base interface for all SDK errors.
type SDKError = errors.SDKError

// Re-export sentinel errors from internal package.
var (
	// ErrClientNotStarted indicates the client has not been started.
	ErrClientNotStarted = errors.ErrClientNotStarted

	// ErrClientAlreadyStarted indicates Start was called twice.
	ErrClientAlreadyStarted = errors.ErrClientAlreadyStarted

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrEmptyResponse indicates the server returned neither result nor error.
	ErrEmptyResponse = errors.ErrEmptyResponse
)
