// Package servertest provides an in-process stand-in for the Tari Universe
// MCP server. It speaks the same newline-delimited JSON-RPC the real server
// does, with knobs for the failure modes the client must survive.
package servertest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Error is a JSON-RPC error returned by the fake server.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Resource is one entry of the resources/list result.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// Tool is one entry of the tools/list result.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	InputSchema any    `json:"inputSchema,omitempty"`
}

// ToolHandler computes a tools/call result. Returning a non-nil *Error
// produces a JSON-RPC error response.
type ToolHandler func(name string, args map[string]any) (any, *Error)

// Config controls the fake server's behavior.
type Config struct {
	// Resources returned from resources/list.
	Resources []Resource

	// Documents maps a resource URI to the document a resources/read
	// returns, wrapped in the standard contents envelope. Unknown URIs get
	// an internal error, matching the real server.
	Documents map[string]any

	// RawContents maps a URI to a literal text payload, bypassing JSON
	// encoding. Used to serve text that is not a JSON document.
	RawContents map[string]string

	// Tools returned from tools/list.
	Tools []Tool

	// ToolHandler serves tools/call. Funcs do not survive the re-exec
	// helper process boundary; use EchoToolCalls there instead.
	ToolHandler ToolHandler `json:"-"`

	// EchoToolCalls makes tools/call succeed with a text content block
	// echoing the tool name and arguments. Ignored when ToolHandler is set.
	EchoToolCalls bool

	// Errors forces a JSON-RPC error response per method.
	Errors map[string]*Error

	// Silent lists methods the server never answers, for deadline tests.
	Silent map[string]bool

	// Delays slows individual methods down.
	Delays map[string]time.Duration

	// NotifyOnStart emits a notifications/initialized record before the
	// first response, as the real server does.
	NotifyOnStart bool

	// MismatchedIDFirst sends a response with a wrong id before every real
	// response.
	MismatchedIDFirst bool

	// Malformed makes every response invalid JSON.
	Malformed bool
}

// request is an incoming JSON-RPC record.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// contentItem is one element of the resources/read contents envelope.
type contentItem struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	Text     string `json:"text"`
}

// Serve reads requests from in and writes responses to out until in closes.
func Serve(in io.Reader, out io.Writer, cfg Config) error {
	reader := bufio.NewReader(in)
	first := true

	for {
		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		var req request
		if err := json.Unmarshal(bytes.TrimSpace(line), &req); err != nil {
			return fmt.Errorf("undecodable request: %w", err)
		}

		if cfg.NotifyOnStart && first {
			first = false
			writeRecord(out, map[string]any{
				"jsonrpc": "2.0",
				"method":  "notifications/initialized",
			})
		}

		if cfg.Silent[req.Method] {
			continue
		}

		if delay, ok := cfg.Delays[req.Method]; ok {
			time.Sleep(delay)
		}

		if cfg.Malformed {
			fmt.Fprintln(out, "{not json")

			continue
		}

		if rpcErr, ok := cfg.Errors[req.Method]; ok {
			respond(out, cfg, req.ID, nil, rpcErr)

			continue
		}

		handle(out, cfg, req)
	}
}

func handle(out io.Writer, cfg Config, req request) {
	switch req.Method {
	case "initialize":
		respond(out, cfg, req.ID, map[string]any{
			"protocolVersion": "2024-11-05",
			"serverInfo":      map[string]any{"name": "tari-universe", "version": "1.0.0"},
			"capabilities": map[string]any{
				"resources": map[string]any{},
				"tools":     map[string]any{},
			},
		}, nil)

	case "resources/list":
		resources := cfg.Resources
		if resources == nil {
			resources = []Resource{}
		}

		respond(out, cfg, req.ID, map[string]any{"resources": resources}, nil)

	case "resources/read":
		handleRead(out, cfg, req)

	case "tools/list":
		tools := cfg.Tools
		if tools == nil {
			tools = []Tool{}
		}

		respond(out, cfg, req.ID, map[string]any{"tools": tools}, nil)

	case "tools/call":
		handleCall(out, cfg, req)

	case "ping":
		respond(out, cfg, req.ID, map[string]any{}, nil)

	default:
		respond(out, cfg, req.ID, nil, &Error{Code: -32601, Message: "Method not found"})
	}
}

func handleRead(out io.Writer, cfg Config, req request) {
	var params struct {
		URI string `json:"uri"`
	}

	_ = json.Unmarshal(req.Params, &params)

	if raw, ok := cfg.RawContents[params.URI]; ok {
		respond(out, cfg, req.ID, map[string]any{
			"contents": []contentItem{{URI: params.URI, MIMEType: "text/plain", Text: raw}},
		}, nil)

		return
	}

	doc, ok := cfg.Documents[params.URI]
	if !ok {
		respond(out, cfg, req.ID, nil, &Error{
			Code:    -32603,
			Message: fmt.Sprintf("Unknown resource: %s", params.URI),
		})

		return
	}

	text, err := json.Marshal(doc)
	if err != nil {
		respond(out, cfg, req.ID, nil, &Error{Code: -32603, Message: err.Error()})

		return
	}

	respond(out, cfg, req.ID, map[string]any{
		"contents": []contentItem{{URI: params.URI, MIMEType: "application/json", Text: string(text)}},
	}, nil)
}

func handleCall(out io.Writer, cfg Config, req request) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}

	_ = json.Unmarshal(req.Params, &params)

	if cfg.ToolHandler != nil {
		result, rpcErr := cfg.ToolHandler(params.Name, params.Arguments)
		respond(out, cfg, req.ID, result, rpcErr)

		return
	}

	if cfg.EchoToolCalls {
		args, _ := json.Marshal(params.Arguments)
		respond(out, cfg, req.ID, map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": fmt.Sprintf("%s %s", params.Name, args)},
			},
		}, nil)

		return
	}

	respond(out, cfg, req.ID, nil, &Error{
		Code:    -32601,
		Message: fmt.Sprintf("Unknown tool: %s", params.Name),
	})
}

func respond(out io.Writer, cfg Config, id json.RawMessage, result any, rpcErr *Error) {
	if cfg.MismatchedIDFirst {
		writeRecord(out, map[string]any{
			"jsonrpc": "2.0",
			"id":      json.RawMessage(`99999`),
			"result":  map[string]any{},
		})
	}

	rec := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
	}
	if rpcErr != nil {
		rec["error"] = rpcErr
	} else {
		rec["result"] = result
	}

	writeRecord(out, rec)
}

func writeRecord(out io.Writer, rec map[string]any) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}

	out.Write(data)
	out.Write([]byte("\n"))
}
