// Package client implements the capability façade over the rpc client.
//
// The façade translates generic JSON-RPC calls into semantically named
// operations (list resources, read a resource, list tools, call a tool) and
// decodes the payload-within-a-payload that resource reads return. It holds
// no protocol knowledge of its own and never retries: rpc-level errors
// propagate to the caller unchanged.
//
// The one deliberate leniency: a resource read whose reply carries no result
// or whose nested document does not decode returns an empty document rather
// than an error, so composite reads can treat "no data yet" uniformly.
package client
