package rpc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tari-tools/universe-mcp-go/internal/config"
	"github.com/tari-tools/universe-mcp-go/internal/errors"
	"github.com/tari-tools/universe-mcp-go/internal/jsonrpc"
	"github.com/tari-tools/universe-mcp-go/internal/subprocess"
)

// ProtocolVersion is the MCP protocol revision sent in the initialize
// handshake and expected by the Tari Universe server.
const ProtocolVersion = "2024-11-05"

// state is the client lifecycle phase.
type state int

const (
	stateUnstarted state = iota
	stateRunning
	stateClosed
)

// proc is the slice of subprocess.Handle the client needs. Tests inject
// in-memory pipes behind this interface.
type proc interface {
	Stdin() io.Writer
	Stdout() io.Reader
	Stderr() string
	Terminate(grace time.Duration) error
}

// Client performs one-shot request/response exchanges over the server
// process's pipes.
//
// The protocol is strictly synchronous: callers must not issue a second call
// before the first returns. The send mutex serializes calls as a backstop,
// but overlapping calls remain a caller contract violation, not a supported
// queueing mode.
type Client struct {
	log     *slog.Logger
	options *config.Options

	// stateMu guards lifecycle state. It is separate from sendMu so Close
	// can proceed while a call is blocked reading; killing the process
	// closes the pipes and unblocks that read.
	stateMu sync.Mutex
	state   state
	dead    bool // a fatal transport error occurred; only Close is useful now

	// sendMu serializes request/response exchanges.
	sendMu sync.Mutex
	proc   proc
	codec  *jsonrpc.Codec

	nextID atomic.Int64
}

// New creates an unstarted client. Call Start to spawn the server process
// and perform the handshake.
func New(log *slog.Logger, options *config.Options) *Client {
	options.Normalize()

	return &Client{
		log:     log.With("component", "rpc", "client_id", ulid.Make().String()),
		options: options,
	}
}

// Start spawns the server process and performs the initialize handshake.
//
// Returns LaunchError if the process cannot be spawned and HandshakeError if
// the initialize exchange does not return a well-formed result. When the
// spawn itself fails the client remains unstarted; a failed handshake reaps
// the process and leaves the client closed.
func (c *Client) Start(ctx context.Context) error {
	c.stateMu.Lock()

	switch c.state {
	case stateRunning:
		c.stateMu.Unlock()

		return errors.ErrClientAlreadyStarted
	case stateClosed:
		c.stateMu.Unlock()

		return errors.ErrClientClosed
	case stateUnstarted:
	}

	h, err := subprocess.Start(ctx, c.log, c.options.ServerPath, c.options.Args)
	if err != nil {
		c.stateMu.Unlock()

		return err
	}

	c.proc = h
	c.codec = jsonrpc.NewCodec(h.Stdin(), h.Stdout())
	c.state = stateRunning
	c.stateMu.Unlock()

	if err := c.handshake(ctx); err != nil {
		c.log.Error("Handshake failed, terminating server", "error", err)

		_ = h.Terminate(c.options.CloseGrace)

		c.stateMu.Lock()
		c.state = stateClosed
		c.stateMu.Unlock()

		return &errors.HandshakeError{Err: err}
	}

	c.log.Info("Client running", "protocol_version", ProtocolVersion)

	return nil
}

// handshake sends the initialize request and validates the reply.
func (c *Client) handshake(ctx context.Context) error {
	params := map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]any{
			"roots":    map[string]any{"listChanged": false},
			"sampling": map[string]any{},
		},
		"clientInfo": map[string]any{
			"name":    c.options.ClientName,
			"version": c.options.ClientVersion,
		},
	}

	resp, err := c.exchange(ctx, "initialize", params, c.nextID.Add(1))
	if err != nil {
		return err
	}

	// The reply need not carry meaningful content, but it must be a
	// well-formed result.
	if resp.Error != nil {
		return &errors.RemoteError{Code: resp.Error.Code, Message: resp.Error.Message}
	}

	if resp.Result == nil {
		return errors.ErrEmptyResponse
	}

	return nil
}

// Call sends a request with the next correlation id and blocks for its
// response.
func (c *Client) Call(ctx context.Context, method string, params any) (*jsonrpc.Response, error) {
	return c.CallWithID(ctx, method, params, c.nextID.Add(1))
}

// CallWithID is Call with a caller-supplied correlation token (integer or
// string).
func (c *Client) CallWithID(ctx context.Context, method string, params any, id any) (*jsonrpc.Response, error) {
	if err := c.checkRunning(); err != nil {
		return nil, err
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	// Re-check under sendMu: Close or a fatal error may have won the race.
	if err := c.checkRunning(); err != nil {
		return nil, err
	}

	return c.exchange(ctx, method, params, id)
}

// checkRunning returns the appropriate error when the client cannot send.
func (c *Client) checkRunning() error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	switch c.state {
	case stateUnstarted:
		return errors.ErrClientNotStarted
	case stateClosed:
		return errors.ErrClientClosed
	case stateRunning:
	}

	if c.dead {
		return &errors.TransportClosedError{
			Stderr: c.proc.Stderr(),
			Err:    errors.ErrEmptyResponse,
		}
	}

	return nil
}

// markDead records a fatal transport failure.
func (c *Client) markDead() {
	c.stateMu.Lock()
	c.dead = true
	c.stateMu.Unlock()
}

// exchange writes one request record and reads response records until one
// carries the matching id. Caller holds sendMu (or is the handshake, which
// runs before the client is visible to other goroutines).
func (c *Client) exchange(ctx context.Context, method string, params any, id any) (*jsonrpc.Response, error) {
	req := jsonrpc.NewRequest(method, params, id)

	c.log.Debug("Sending request", "method", method, "id", id)

	if err := c.codec.WriteRequest(req); err != nil {
		c.markDead()

		return nil, &errors.TransportClosedError{Stderr: c.proc.Stderr(), Err: err}
	}

	for {
		resp, err := c.read(ctx)
		if err != nil {
			return nil, err
		}

		// The server emits a notifications/initialized record at startup on
		// the same stream; notifications carry no id and are not replies.
		if resp.IsNotification() {
			c.log.Debug("Skipping notification record", "method", resp.Method)

			continue
		}

		if !jsonrpc.IDEqual(resp.ID, id) {
			c.log.Warn("Response id does not match request", "want", id, "got", resp.ID)

			continue
		}

		c.log.Debug("Received response", "id", resp.ID, "is_error", resp.Error != nil)

		return resp, nil
	}
}

// read performs one blocking record read, honoring the configured read
// deadline and context cancellation.
//
// A deadline expiry or cancellation leaves the reader goroutine blocked on
// the pipe; the client is marked dead so subsequent calls fail fast, and
// Close unblocks the reader by terminating the process.
func (c *Client) read(ctx context.Context) (*jsonrpc.Response, error) {
	type result struct {
		resp *jsonrpc.Response
		err  error
	}

	if c.options.ReadTimeout <= 0 && ctx.Done() == nil {
		// Baseline contract: unbounded blocking read.
		resp, err := c.codec.ReadRecord()

		return c.finishRead(resp, err)
	}

	var timeout <-chan time.Time

	if c.options.ReadTimeout > 0 {
		timer := time.NewTimer(c.options.ReadTimeout)
		defer timer.Stop()

		timeout = timer.C
	}

	done := make(chan result, 1)

	go func() {
		resp, err := c.codec.ReadRecord()
		done <- result{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		return c.finishRead(r.resp, r.err)

	case <-timeout:
		c.markDead()
		c.log.Warn("Read deadline exceeded", "timeout", c.options.ReadTimeout)

		return nil, &errors.TransportClosedError{
			Stderr: c.proc.Stderr(),
			Err:    fmt.Errorf("read deadline exceeded after %s", c.options.ReadTimeout),
		}

	case <-ctx.Done():
		c.markDead()

		return nil, ctx.Err()
	}
}

// finishRead classifies a completed record read.
func (c *Client) finishRead(resp *jsonrpc.Response, err error) (*jsonrpc.Response, error) {
	if err == nil {
		return resp, nil
	}

	c.markDead()

	if _, ok := err.(*errors.MalformedResponseError); ok {
		// A garbled record may desynchronize subsequent reads; the record is
		// lost and the client cannot recover alignment.
		c.log.Error("Malformed response record", "error", err)

		return nil, err
	}

	c.log.Error("Transport closed during read", "error", err)

	return nil, &errors.TransportClosedError{Stderr: c.proc.Stderr(), Err: err}
}

// Close requests graceful termination of the server process and blocks
// until it exits or the grace period elapses, then escalates to a forceful
// kill. Idempotent: closing an already-closed or unstarted client is a
// no-op. Always safe from cleanup paths, including mid-call: terminating
// the process closes its pipes, which unblocks any pending read.
func (c *Client) Close() error {
	c.stateMu.Lock()

	if c.state != stateRunning {
		c.state = stateClosed
		c.stateMu.Unlock()

		return nil
	}

	c.state = stateClosed
	h := c.proc
	c.stateMu.Unlock()

	c.log.Info("Closing client")

	if err := h.Terminate(c.options.CloseGrace); err != nil {
		return fmt.Errorf("terminate server: %w", err)
	}

	return nil
}
