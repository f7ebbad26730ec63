//go:build windows

package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/logging"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"

	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
)

// pipeTransport opens the daemon's named pipe fresh for every call: one
// open, one write, one read, then the handle is discarded. Pipe handles
// are not held across unrelated calls and never pooled.
type pipeTransport struct {
	address string
	timeout time.Duration
	logger  logging.Logger
	metrics ConnMetrics
}

func newPipeTransport(config Config) (Transport, error) {
	return &pipeTransport{
		address: config.Address,
		timeout: config.RequestTimeout,
		logger:  config.Logger,
		metrics: config.ConnMetrics,
	}, nil
}

func (t *pipeTransport) Acquire(ctx context.Context) (Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(t.address, os.O_RDWR, 0)
	if err != nil {
		return nil, gicserrors.ConnectionFailed(t.address, err)
	}

	t.logger.Debug("opened daemon pipe", logging.String("address", t.address))
	if t.metrics != nil {
		t.metrics.ConnOpened()
	}

	return &pipeConn{file: f, address: t.address}, nil
}

// Release always closes the handle; the pipe variant has no idle set.
func (t *pipeTransport) Release(conn Conn, healthy bool) {
	if conn == nil {
		return
	}
	_ = conn.Close()
	if t.metrics != nil {
		t.metrics.ConnClosed()
	}
}

func (t *pipeTransport) CloseAll() error { return nil }

// pipeConn is a single-use message-pipe handle.
type pipeConn struct {
	file    *os.File
	address string
}

func (c *pipeConn) WriteFrame(frame []byte) error {
	if _, err := c.file.Write(frame); err != nil {
		return gicserrors.WriteFailed(c.address, err)
	}
	return nil
}

func (c *pipeConn) ReadFrame() ([]byte, error) {
	var buffer []byte
	chunk := make([]byte, readChunkSize)
	for {
		n, err := c.file.Read(chunk)
		if n > 0 {
			buffer = append(buffer, chunk[:n]...)
			if i := bytes.IndexByte(buffer, protocol.FrameDelimiter); i >= 0 {
				return buffer[:i], nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, gicserrors.ConnectionLost(c.address, err)
			}
			return nil, gicserrors.ConnectionLost(c.address, err)
		}
	}
}

func (c *pipeConn) Close() error {
	return c.file.Close()
}
