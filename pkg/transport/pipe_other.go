//go:build !windows

package transport

import gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"

// Named pipes only exist on Windows. On POSIX platforms requesting the
// pipe variant is a configuration error.
func newPipeTransport(config Config) (Transport, error) {
	return nil, gicserrors.TransportUnavailable("named pipe")
}
