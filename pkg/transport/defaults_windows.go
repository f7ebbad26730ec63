//go:build windows

package transport

// DefaultAddress is the daemon's default named pipe.
const DefaultAddress = `\\.\pipe\gics`

const defaultKind = KindPipe
