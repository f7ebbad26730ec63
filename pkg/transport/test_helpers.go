package transport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"
)

// MockDaemonHandler produces the response for one decoded request.
type MockDaemonHandler func(req *protocol.Request) *protocol.Response

// MockDaemon is an in-process stand-in for the GICS daemon, listening on a
// real Unix socket and speaking the newline-delimited protocol. Tests plug
// in a handler; the default handler echoes an ok acknowledgment.
type MockDaemon struct {
	listener net.Listener
	group    *errgroup.Group
	handler  MockDaemonHandler

	mu       sync.Mutex
	requests []*protocol.Request
	conns    []net.Conn
	closed   bool

	// DropAfterRead, when set, makes the daemon close each connection
	// after reading a request without answering. Used to exercise the
	// reset/reconnect path.
	DropAfterRead bool

	// TrailingGarbage, when set, appends extra bytes after the response
	// frame in the same write. Used to exercise frame-boundary handling.
	TrailingGarbage []byte
}

// NewMockDaemon starts a mock daemon on the given socket path.
func NewMockDaemon(socketPath string, handler MockDaemonHandler) (*MockDaemon, error) {
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("mock daemon listen: %w", err)
	}

	if handler == nil {
		handler = AckHandler
	}

	d := &MockDaemon{
		listener: listener,
		group:    &errgroup.Group{},
		handler:  handler,
	}

	d.group.Go(d.acceptLoop)
	return d, nil
}

// AckHandler answers every request with {"ok": true}.
func AckHandler(req *protocol.Request) *protocol.Response {
	id, _ := json.Marshal(req.ID)
	return &protocol.Response{ID: id, Result: json.RawMessage(`{"ok":true}`)}
}

// ErrorHandler returns a handler that answers every request with the given
// daemon error envelope.
func ErrorHandler(code int, message string) MockDaemonHandler {
	return func(req *protocol.Request) *protocol.Response {
		id, _ := json.Marshal(req.ID)
		return &protocol.Response{ID: id, Error: &protocol.ErrorObject{Code: code, Message: message}}
	}
}

func (d *MockDaemon) acceptLoop() error {
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			// Listener closed during shutdown.
			return nil
		}
		d.mu.Lock()
		d.conns = append(d.conns, conn)
		d.mu.Unlock()
		d.group.Go(func() error {
			d.serveConn(conn)
			return nil
		})
	}
}

func (d *MockDaemon) serveConn(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Bytes()
		var req protocol.Request
		if err := json.Unmarshal(line, &req); err != nil {
			return
		}

		d.mu.Lock()
		d.requests = append(d.requests, &req)
		drop := d.DropAfterRead
		trailing := d.TrailingGarbage
		d.mu.Unlock()

		if drop {
			return
		}

		resp := d.handler(&req)
		if resp == nil {
			continue
		}

		out, err := json.Marshal(resp)
		if err != nil {
			return
		}
		out = append(out, protocol.FrameDelimiter)
		out = append(out, trailing...)
		if _, err := conn.Write(out); err != nil {
			return
		}
	}
}

// Requests returns a copy of every request the daemon has decoded so far.
func (d *MockDaemon) Requests() []*protocol.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*protocol.Request, len(d.requests))
	copy(out, d.requests)
	return out
}

// RequestCount returns the number of requests received so far.
func (d *MockDaemon) RequestCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

// Addr returns the socket path the daemon listens on.
func (d *MockDaemon) Addr() string {
	return d.listener.Addr().String()
}

// Close stops accepting and waits for connection goroutines to drain.
func (d *MockDaemon) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	conns := d.conns
	d.mu.Unlock()

	err := d.listener.Close()
	for _, conn := range conns {
		_ = conn.Close()
	}
	_ = d.group.Wait()
	return err
}
