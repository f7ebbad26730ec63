package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"
)

func newSocketFixture(t *testing.T, handler MockDaemonHandler, config Config) (*socketTransport, *MockDaemon) {
	t.Helper()

	daemon, err := NewMockDaemon(filepath.Join(t.TempDir(), "gics.sock"), handler)
	require.NoError(t, err)
	t.Cleanup(func() { _ = daemon.Close() })

	config.Address = daemon.Addr()
	tr := newSocketTransport(config.normalize())
	t.Cleanup(func() { _ = tr.CloseAll() })

	return tr, daemon
}

func roundTrip(t *testing.T, conn Conn, id uint64) *protocol.Response {
	t.Helper()

	req, err := protocol.NewRequest(id, protocol.MethodPing, nil)
	require.NoError(t, err)
	frame, err := protocol.EncodeRequest(req)
	require.NoError(t, err)

	require.NoError(t, conn.WriteFrame(frame))
	line, err := conn.ReadFrame()
	require.NoError(t, err)

	resp, err := protocol.DecodeResponse(line)
	require.NoError(t, err)
	return resp
}

func TestSocketRoundTrip(t *testing.T) {
	tr, _ := newSocketFixture(t, nil, Config{})

	conn, err := tr.Acquire(context.Background())
	require.NoError(t, err)
	defer tr.Release(conn, true)

	resp := roundTrip(t, conn, 1)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Result))
}

func TestSocketConnectionReuse(t *testing.T) {
	tr, _ := newSocketFixture(t, nil, Config{})
	ctx := context.Background()

	conn, err := tr.Acquire(ctx)
	require.NoError(t, err)
	roundTrip(t, conn, 1)
	tr.Release(conn, true)

	again, err := tr.Acquire(ctx)
	require.NoError(t, err)
	defer tr.Release(again, true)

	assert.Same(t, conn, again, "healthy connection must come back from the pool")
	roundTrip(t, again, 2)
}

func TestSocketUnhealthyConnectionEvicted(t *testing.T) {
	tr, _ := newSocketFixture(t, nil, Config{})
	ctx := context.Background()

	conn, err := tr.Acquire(ctx)
	require.NoError(t, err)
	tr.Release(conn, false)

	assert.Equal(t, 0, tr.pool.Len(), "unhealthy connections never re-enter the pool")

	// The next acquire dials fresh and works.
	fresh, err := tr.Acquire(ctx)
	require.NoError(t, err)
	defer tr.Release(fresh, true)
	assert.NotSame(t, conn, fresh)
	roundTrip(t, fresh, 1)
}

func TestSocketDaemonClosesMidRead(t *testing.T) {
	tr, daemon := newSocketFixture(t, nil, Config{})
	daemon.DropAfterRead = true

	conn, err := tr.Acquire(context.Background())
	require.NoError(t, err)
	defer tr.Release(conn, false)

	req, _ := protocol.NewRequest(1, protocol.MethodPing, nil)
	frame, _ := protocol.EncodeRequest(req)
	require.NoError(t, conn.WriteFrame(frame))

	_, err = conn.ReadFrame()
	require.Error(t, err)

	classified, ok := gicserrors.As(err)
	require.True(t, ok)
	assert.Equal(t, gicserrors.CodeConnectionLost, classified.Code())
	assert.True(t, classified.Retryable())
}

func TestSocketReadTimeout(t *testing.T) {
	// A handler that never answers.
	silent := func(req *protocol.Request) *protocol.Response { return nil }
	tr, _ := newSocketFixture(t, silent, Config{RequestTimeout: 50 * time.Millisecond})

	conn, err := tr.Acquire(context.Background())
	require.NoError(t, err)
	defer tr.Release(conn, false)

	req, _ := protocol.NewRequest(1, protocol.MethodPing, nil)
	frame, _ := protocol.EncodeRequest(req)
	require.NoError(t, conn.WriteFrame(frame))

	_, err = conn.ReadFrame()
	require.Error(t, err)

	classified, ok := gicserrors.As(err)
	require.True(t, ok)
	assert.Equal(t, gicserrors.CodeReadTimeout, classified.Code())
	assert.True(t, classified.Retryable())
}

func TestSocketTrailingBytesDiscarded(t *testing.T) {
	tr, daemon := newSocketFixture(t, nil, Config{})
	daemon.TrailingGarbage = []byte("junk after the frame")

	conn, err := tr.Acquire(context.Background())
	require.NoError(t, err)
	defer tr.Release(conn, true)

	resp := roundTrip(t, conn, 1)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Result))
}

func TestSocketConnectRefused(t *testing.T) {
	config := Config{Address: filepath.Join(t.TempDir(), "absent.sock")}
	tr := newSocketTransport(config.normalize())

	_, err := tr.Acquire(context.Background())
	require.Error(t, err)

	classified, ok := gicserrors.As(err)
	require.True(t, ok)
	assert.Equal(t, gicserrors.CodeConnectionFailed, classified.Code())
	assert.True(t, classified.Retryable())
}

func TestCallerReturnsDaemonEnvelope(t *testing.T) {
	tr, _ := newSocketFixture(t, ErrorHandler(-32000, "storage failure"), Config{})

	c := newCaller(tr, Config{}.normalize())
	req, err := protocol.NewRequest(1, protocol.MethodFlush, nil)
	require.NoError(t, err)

	resp, err := c.RoundTrip(context.Background(), req)
	require.NoError(t, err, "a daemon error envelope is a successful round trip")
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)

	// The connection that carried the envelope is still good.
	assert.Equal(t, 1, tr.pool.Len())
}

func TestCallerEvictsOnDecodeFailure(t *testing.T) {
	// A raw listener that answers every request with a frame that is not
	// JSON at all.
	socketPath := filepath.Join(t.TempDir(), "gics.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					if _, err := conn.Write([]byte("not json\n")); err != nil {
						return
					}
				}
			}(conn)
		}
	}()

	config := Config{Address: socketPath, RequestTimeout: 2 * time.Second}.normalize()
	tr := newSocketTransport(config)
	t.Cleanup(func() { _ = tr.CloseAll() })

	c := newCaller(tr, config)
	req, err := protocol.NewRequest(1, protocol.MethodPing, nil)
	require.NoError(t, err)

	_, err = c.RoundTrip(context.Background(), req)
	require.Error(t, err)

	classified, ok := gicserrors.As(err)
	require.True(t, ok)
	assert.Equal(t, gicserrors.CodeDecodeFailed, classified.Code())
	assert.True(t, classified.Retryable())

	// The desynced connection must not return to the pool.
	assert.Equal(t, 0, tr.pool.Len())
}

func TestNewSelectsSocketOnDefaultKind(t *testing.T) {
	tr, err := New(Config{Address: filepath.Join(t.TempDir(), "gics.sock")})
	require.NoError(t, err)
	require.IsType(t, &socketTransport{}, tr)
	_ = tr.CloseAll()
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(Config{Kind: Kind("carrier-pigeon")})
	require.Error(t, err)

	classified, ok := gicserrors.As(err)
	require.True(t, ok)
	assert.Equal(t, gicserrors.CodeInvalidConfig, classified.Code())
}

func TestMockDaemonRecordsRequests(t *testing.T) {
	tr, daemon := newSocketFixture(t, nil, Config{})

	conn, err := tr.Acquire(context.Background())
	require.NoError(t, err)
	defer tr.Release(conn, true)

	roundTrip(t, conn, 42)

	requests := daemon.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, uint64(42), requests[0].ID)
	assert.Equal(t, protocol.MethodPing, requests[0].Method)

	var params map[string]interface{}
	require.NoError(t, json.Unmarshal(requests[0].Params, &params))
	assert.Empty(t, params)
}
