// Package jsonrpc implements the newline-delimited JSON-RPC 2.0 wire format
// spoken by the Tari Universe MCP server.
//
// Each record is one self-contained JSON document terminated by a single
// newline, written to the server's stdin and read from its stdout. The
// package provides the envelope types and a Codec that frames them over a
// pipe pair.
package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Version is the protocol tag carried by every request.
const Version = "2.0"

// Request is a JSON-RPC 2.0 request envelope.
//
// ID is an integer or string correlation token. Requests without an ID are
// notifications and receive no response.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      any    `json:"id,omitempty"`
}

// NewRequest builds a request carrying the protocol version tag.
func NewRequest(method string, params any, id any) *Request {
	return &Request{
		JSONRPC: Version,
		Method:  method,
		Params:  params,
		ID:      id,
	}
}

// Error is the error member of a response.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Response is a JSON-RPC 2.0 response envelope. Exactly one of Result and
// Error is set on a well-formed response.
//
// Method is populated when the record is actually a server-initiated
// notification rather than a response; the Tari Universe server emits a
// notifications/initialized record at startup on the same stream.
type Response struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the record is a server notification rather
// than a reply to an outstanding request.
func (r *Response) IsNotification() bool {
	return r.ID == nil
}

// UnmarshalResult decodes the result payload into v.
func (r *Response) UnmarshalResult(v any) error {
	if r.Result == nil {
		return fmt.Errorf("response %v has no result", r.ID)
	}

	if err := json.Unmarshal(r.Result, v); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}

	return nil
}

// IDEqual reports whether two correlation tokens match.
//
// JSON decoding turns integer ids into float64, so an id written as int64
// must compare equal to its decoded form.
func IDEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	if na, aok := numericID(a); aok {
		nb, bok := numericID(b)

		return bok && na == nb
	}

	sa, aok := a.(string)
	sb, bok := b.(string)

	return aok && bok && sa == sb
}

func numericID(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	default:
		return 0, false
	}
}
