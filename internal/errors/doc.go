// Package errors defines error types for the Tari Universe MCP SDK.
//
// This package provides structured error types that wrap different failure
// scenarios when driving the Tari Universe MCP server process. All error
// types support error unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
package errors
