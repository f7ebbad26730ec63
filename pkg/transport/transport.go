// Package transport implements the IPC transport layer of the GICS client:
// platform transport selection, connection pooling, the request/response
// round trip, and the retry middleware that makes the client resilient to a
// daemon that is slow to accept, closes idle connections, or resets
// mid-request.
//
// Two transport variants exist. On POSIX platforms the client holds a pool
// of long-lived Unix stream-socket connections, reused across calls. On
// Windows each call opens the daemon's named pipe, performs one write and
// one read, and discards the handle; pipe handles are never pooled.
//
// A connection carries at most one in-flight request. This invariant is
// what makes the first frame read after a write the unambiguous response,
// so the client never has to match response ids.
package transport

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/logging"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"

	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
)

// Conn is one open byte stream to the daemon. A Conn is exclusively owned
// by whichever call currently holds it; it is never touched concurrently.
type Conn interface {
	// WriteFrame writes one complete frame, bounded by the configured
	// timeout.
	WriteFrame(frame []byte) error

	// ReadFrame reads bytes until a frame delimiter is observed and
	// returns the frame without its delimiter. Any bytes after the first
	// delimiter in the same read are discarded along with the buffer.
	ReadFrame() ([]byte, error)

	// Close releases the underlying handle.
	Close() error
}

// Transport hands out connections to the daemon.
type Transport interface {
	// Acquire returns an idle pooled connection if one exists, else opens
	// a new one.
	Acquire(ctx context.Context) (Conn, error)

	// Release returns conn to the idle set when healthy and capacity
	// allows; otherwise it closes conn.
	Release(conn Conn, healthy bool)

	// CloseAll drains and closes every idle connection. Connections
	// currently checked out are closed by their own release path.
	CloseAll() error
}

// RoundTripper executes one logical request against the daemon and returns
// the decoded response envelope. Middleware (retry, observability) wraps
// this single method.
type RoundTripper interface {
	RoundTrip(ctx context.Context, req *protocol.Request) (*protocol.Response, error)
}

// Kind identifies the base transport variant.
type Kind string

const (
	// KindSocket is the pooled Unix stream-socket transport.
	KindSocket Kind = "socket"
	// KindPipe is the ephemeral-per-call named-pipe transport.
	KindPipe Kind = "pipe"
)

// ConnMetrics receives connection lifecycle events. Implemented by
// observability.ClientMetrics; a nil value disables recording.
type ConnMetrics interface {
	ConnOpened()
	ConnClosed()
	SetIdleConns(n int)
}

// RequestMetrics receives per-call outcomes. Implemented by
// observability.ClientMetrics; a nil value disables recording.
type RequestMetrics interface {
	RecordRequest(method, status string, duration time.Duration)
	RecordRetry(method string)
}

// Config carries everything the transport layer needs.
type Config struct {
	// Kind selects the transport variant. Zero value selects the platform
	// default (socket on POSIX, pipe on Windows).
	Kind Kind

	// Address is the socket path or pipe name. Zero value selects the
	// platform default.
	Address string

	// RequestTimeout bounds connect and each read/write.
	RequestTimeout time.Duration

	// PoolSize caps the idle connection pool; coerced to at least 1.
	// Ignored by the pipe transport.
	PoolSize int

	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// RetryDelay is the fixed sleep between attempts. The failure domain
	// is a local daemon, so the delay does not grow.
	RetryDelay time.Duration

	// Logger receives transport-level logs. Nil means no logging.
	Logger logging.Logger

	// ConnMetrics and RequestMetrics receive instrumentation events.
	ConnMetrics    ConnMetrics
	RequestMetrics RequestMetrics

	// Tracer, when set, opens a client span around every call.
	Tracer trace.Tracer
}

// Default configuration values.
const (
	DefaultRequestTimeout = 5 * time.Second
	DefaultPoolSize       = 4
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 100 * time.Millisecond
)

// DefaultConfig returns a transport configuration with the platform
// defaults filled in.
func DefaultConfig() Config {
	return Config{
		Kind:           defaultKind,
		Address:        DefaultAddress,
		RequestTimeout: DefaultRequestTimeout,
		PoolSize:       DefaultPoolSize,
		MaxRetries:     DefaultMaxRetries,
		RetryDelay:     DefaultRetryDelay,
	}
}

// normalize fills zero values with defaults and coerces out-of-range
// settings.
func (c Config) normalize() Config {
	if c.Kind == "" {
		c.Kind = defaultKind
	}
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.PoolSize < 1 {
		c.PoolSize = DefaultPoolSize
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
	return c
}

// New creates the transport variant named by the configuration.
func New(config Config) (Transport, error) {
	config = config.normalize()

	switch config.Kind {
	case KindSocket:
		return newSocketTransport(config), nil
	case KindPipe:
		return newPipeTransport(config)
	default:
		return nil, gicserrors.InvalidConfig("unknown transport kind " + string(config.Kind))
	}
}

// NewRoundTripper wraps a transport in the standard middleware chain:
// observability outermost, then retry, then the base round trip.
func NewRoundTripper(tr Transport, config Config) RoundTripper {
	config = config.normalize()

	base := newCaller(tr, config)
	chain := Chain(
		NewObservabilityMiddleware(config),
		NewReliabilityMiddleware(config),
	)
	return chain.Wrap(base)
}
