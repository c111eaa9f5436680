package errors

import (
	"errors"
	"fmt"
)

// SDKError is the base interface for all SDK errors.
type SDKError interface {
	error
	IsUniverseSDKError() bool
}

// Compile-time verification that all error types implement SDKError.
var (
	_ SDKError = (*LaunchError)(nil)
	_ SDKError = (*HandshakeError)(nil)
	_ SDKError = (*TransportClosedError)(nil)
	_ SDKError = (*MalformedResponseError)(nil)
	_ SDKError = (*RemoteError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrClientClosed indicates the client has been closed and cannot be
	// reused. Closed clients are terminal: create a new one with Start().
	ErrClientClosed = errors.New("client closed")

	// ErrClientNotStarted indicates an operation was attempted before Start().
	ErrClientNotStarted = errors.New("client not started")

	// ErrClientAlreadyStarted indicates Start() was called on a running client.
	ErrClientAlreadyStarted = errors.New("client already started")

	// ErrEmptyResponse indicates the server closed its output stream before
	// writing a response record.
	ErrEmptyResponse = errors.New("no response before stream closed")
)

// LaunchError indicates the server process could not be spawned.
// Fatal to the client: callers must not retry the same instance.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch server %q: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsUniverseSDKError implements SDKError.
func (e *LaunchError) IsUniverseSDKError() bool { return true }

// HandshakeError indicates the initialize exchange did not complete with a
// well-formed result. Fatal to the client.
type HandshakeError struct {
	Err error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("initialize handshake failed: %v", e.Err)
}

func (e *HandshakeError) Unwrap() error {
	return e.Err
}

// IsUniverseSDKError implements SDKError.
func (e *HandshakeError) IsUniverseSDKError() bool { return true }

// TransportClosedError indicates a pipe closed or the server process exited
// before or during a call. Fatal to the client: callers should Close() and
// abandon the instance.
type TransportClosedError struct {
	Stderr string
	Err    error
}

func (e *TransportClosedError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("transport closed: %v (stderr: %s)", e.Err, e.Stderr)
	}

	return fmt.Sprintf("transport closed: %v", e.Err)
}

func (e *TransportClosedError) Unwrap() error {
	return e.Err
}

// IsUniverseSDKError implements SDKError.
func (e *TransportClosedError) IsUniverseSDKError() bool { return true }

// MalformedResponseError indicates a response record did not parse as a
// JSON-RPC envelope. The record is lost and stream alignment cannot be
// recovered, so the client must be treated as dead.
// This error preserves the raw record that failed to parse.
type MalformedResponseError struct {
	RawData string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response record: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsUniverseSDKError implements SDKError.
func (e *MalformedResponseError) IsUniverseSDKError() bool { return true }

// RemoteError indicates a well-formed response carried an error field.
// Recoverable: it is domain-level and callers decide whether to retry,
// skip, or abort.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}

// IsUniverseSDKError implements SDKError.
func (e *RemoteError) IsUniverseSDKError() bool { return true }
