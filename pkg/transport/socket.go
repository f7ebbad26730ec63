package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/logging"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"

	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
)

// readChunkSize is the receive buffer size for a single read syscall.
const readChunkSize = 4096

// socketTransport is the pooled Unix stream-socket transport. Connections
// are long-lived and reused across calls to amortize connection setup.
type socketTransport struct {
	address string
	timeout time.Duration
	pool    *Pool
	logger  logging.Logger
	metrics ConnMetrics
}

func newSocketTransport(config Config) *socketTransport {
	return &socketTransport{
		address: config.Address,
		timeout: config.RequestTimeout,
		pool:    NewPool(config.PoolSize, config.ConnMetrics),
		logger:  config.Logger,
		metrics: config.ConnMetrics,
	}
}

// Acquire returns a pooled idle connection, or dials a fresh one.
func (t *socketTransport) Acquire(ctx context.Context) (Conn, error) {
	if conn := t.pool.Get(); conn != nil {
		return conn, nil
	}

	dialer := net.Dialer{Timeout: t.timeout}
	nc, err := dialer.DialContext(ctx, "unix", t.address)
	if err != nil {
		return nil, gicserrors.ConnectionFailed(t.address, err)
	}

	t.logger.Debug("opened daemon connection", logging.String("address", t.address))
	if t.metrics != nil {
		t.metrics.ConnOpened()
	}

	return &socketConn{conn: nc, address: t.address, timeout: t.timeout}, nil
}

// Release returns a healthy connection to the pool. Unhealthy connections,
// and healthy ones that exceed pool capacity, are closed.
func (t *socketTransport) Release(conn Conn, healthy bool) {
	if conn == nil {
		return
	}

	if healthy && t.pool.Put(conn) {
		return
	}

	_ = conn.Close()
	if t.metrics != nil {
		t.metrics.ConnClosed()
	}
	if !healthy {
		t.logger.Debug("discarded unhealthy daemon connection", logging.String("address", t.address))
	}
}

// CloseAll drains and closes every idle connection.
func (t *socketTransport) CloseAll() error {
	return t.pool.Close()
}

// socketConn wraps one Unix stream socket. Deadlines are re-armed per
// operation so a slow daemon fails the call instead of wedging it.
type socketConn struct {
	conn    net.Conn
	address string
	timeout time.Duration
}

func (c *socketConn) WriteFrame(frame []byte) error {
	if c.timeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	}

	if _, err := c.conn.Write(frame); err != nil {
		return gicserrors.WriteFailed(c.address, err)
	}
	return nil
}

func (c *socketConn) ReadFrame() ([]byte, error) {
	if c.timeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	}

	var buffer []byte
	chunk := make([]byte, readChunkSize)
	for {
		n, err := c.conn.Read(chunk)
		if n > 0 {
			buffer = append(buffer, chunk[:n]...)
			if i := bytes.IndexByte(buffer, protocol.FrameDelimiter); i >= 0 {
				// Bytes after the delimiter are dropped with the buffer.
				// One in-flight request per connection means the daemon
				// has nothing else to say here.
				return buffer[:i], nil
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				// The daemon closed the socket before a complete frame
				// arrived. Force a reconnect on the next attempt.
				return nil, gicserrors.ConnectionLost(c.address, err)
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, gicserrors.ReadTimeout(c.address, err)
			}
			return nil, gicserrors.ConnectionLost(c.address, err)
		}
	}
}

func (c *socketConn) Close() error {
	return c.conn.Close()
}
