//go:build !windows

package transport

// DefaultAddress is the daemon's default socket path.
const DefaultAddress = "/tmp/gics.sock"

const defaultKind = KindSocket
