// Package rpc implements the transport/correlation client for the Tari
// Universe MCP server.
//
// The client owns the server child process and its pipes, serializes
// requests to the newline-delimited JSON-RPC wire format, and performs
// strictly synchronous request/response exchanges: one request is written
// and flushed, then exactly one response record is read back. Correlation
// ids are monotonically increasing integers allocated per client unless the
// caller supplies one; because at most one request is outstanding at a time,
// no correlation table is needed.
//
// Lifecycle is Unstarted -> Running -> Closed. Close is idempotent and safe
// from cleanup paths after any failure.
package rpc
