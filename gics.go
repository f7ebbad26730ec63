// Package gics is a Go client for the GICS daemon: a local key/field-map
// store with built-in analytics, reached over a Unix stream socket (or a
// named pipe on Windows) speaking newline-delimited JSON-RPC.
//
// Most programs only need the client sub-package:
//
//	c, err := gics.NewClient(client.WithAddress("/tmp/gics.sock"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	ok, err := c.Put(ctx, "service:api", map[string]interface{}{"latency_ms": 12})
//
// The sub-packages:
//
//   - pkg/client: the call façade with sync and async method wrappers
//   - pkg/transport: connection pooling, retries, and framing
//   - pkg/protocol: wire types and the line codec
//   - pkg/auth: token-file discovery
//   - pkg/config: the optional TOML settings file
//   - pkg/observability: Prometheus metrics and OpenTelemetry tracing
package gics

import (
	"github.com/Shiloren/Gred-In-Compression-System/pkg/client"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/config"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/transport"
)

// Version represents the current version of the client library
const Version = "1.0.0"

// These exports provide direct access to the core components
var (
	// NewClient creates a new GICS daemon client
	NewClient = client.New

	// LoadConfig reads the settings file from its default location
	LoadConfig = config.Load

	// DefaultAddress is the platform-default daemon endpoint
	DefaultAddress = transport.DefaultAddress
)
