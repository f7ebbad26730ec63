// Package protocol defines the wire types and framing codec for the GICS
// daemon IPC protocol.
//
// The protocol is line-oriented JSON-RPC: each request is a single UTF-8
// encoded JSON object terminated by a newline, and each response is the
// first newline-terminated JSON object read back on the same connection.
// There is no batching and no length prefix; the newline is the only frame
// delimiter.
//
// Requests carry a monotonically increasing integer id assigned by the
// client, and an optional bearer token. Responses carry either a result
// payload or an error envelope, never both. The per-method result schemas
// in this package decode result payloads strictly, so a malformed daemon
// response surfaces as a schema mismatch rather than a silently defaulted
// value.
package protocol
