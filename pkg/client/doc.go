// Package client provides the high-level GICS daemon client: typed method
// wrappers, request-id allocation, token attachment, and lifecycle
// management over the pooled IPC transport.
//
// Basic usage:
//
//	c, err := client.New(client.WithAddress("/tmp/gics.sock"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	ok, err := c.Put(ctx, "service:api", map[string]interface{}{"latency_ms": 12})
//
// Every synchronous method has an Async twin returning a Future that
// resolves on a background goroutine.
package client
