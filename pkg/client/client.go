package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/auth"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/config"
	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/logging"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/transport"
)

// Sentinel causes for schema mismatches on required result fields.
var (
	errMissingOk             = errors.New("result missing ok field")
	errMissingSubscriptionID = errors.New("result missing subscriptionId field")
)

// Client is a GICS daemon client. It is safe for concurrent use; each
// in-flight call holds its own connection.
type Client struct {
	transport transport.Transport
	rt        transport.RoundTripper
	tokens    auth.TokenProvider
	logger    logging.Logger
	poolSize  int

	// Request ids are allocated per client instance, starting at 1.
	idMu   sync.Mutex
	nextID uint64

	closeOnce sync.Once
	closeErr  error
}

type options struct {
	transportConfig transport.Config
	tokens          auth.TokenProvider
	customTransport transport.Transport
}

// Option configures a Client.
type Option func(*options)

// WithAddress sets the daemon socket path (or pipe name on Windows).
func WithAddress(address string) Option {
	return func(o *options) { o.transportConfig.Address = address }
}

// WithToken sets an explicit auth token, bypassing token-file discovery.
// The value is sent verbatim, whitespace included.
func WithToken(token string) Option {
	return func(o *options) { o.tokens = auth.NewStaticTokenProvider(token) }
}

// WithTokenProvider replaces the token source entirely.
func WithTokenProvider(p auth.TokenProvider) Option {
	return func(o *options) { o.tokens = p }
}

// WithMaxRetries sets the number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(o *options) { o.transportConfig.MaxRetries = n }
}

// WithRetryDelay sets the fixed delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) { o.transportConfig.RetryDelay = d }
}

// WithRequestTimeout bounds connect and each read/write.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.transportConfig.RequestTimeout = d }
}

// WithPoolSize caps the idle connection pool.
func WithPoolSize(n int) Option {
	return func(o *options) { o.transportConfig.PoolSize = n }
}

// WithLogger attaches a logger to the client and its transport.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.transportConfig.Logger = logger }
}

// WithMetrics wires Prometheus-style instrumentation into the transport.
// The same value may implement either interface or both.
func WithMetrics(conn transport.ConnMetrics, req transport.RequestMetrics) Option {
	return func(o *options) {
		o.transportConfig.ConnMetrics = conn
		o.transportConfig.RequestMetrics = req
	}
}

// WithTracer opens a client span around every call.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) { o.transportConfig.Tracer = tracer }
}

// WithTransport substitutes the underlying transport. Used in tests.
func WithTransport(tr transport.Transport) Option {
	return func(o *options) { o.customTransport = tr }
}

// FromConfig applies the non-zero fields of a loaded config file.
// Options listed after FromConfig override it.
func FromConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		if cfg.Address != "" {
			o.transportConfig.Address = cfg.Address
		}
		if cfg.Token != "" {
			o.tokens = auth.NewStaticTokenProvider(cfg.Token)
		}
		if cfg.MaxRetries > 0 {
			o.transportConfig.MaxRetries = cfg.MaxRetries
		}
		if cfg.RetryDelayMS > 0 {
			o.transportConfig.RetryDelay = cfg.RetryDelay()
		}
		if cfg.RequestTimeoutMS > 0 {
			o.transportConfig.RequestTimeout = cfg.RequestTimeout()
		}
		if cfg.PoolSize > 0 {
			o.transportConfig.PoolSize = cfg.PoolSize
		}
	}
}

// New creates a client. With no options it targets the platform default
// address and discovers the auth token from the conventional token files.
func New(opts ...Option) (*Client, error) {
	o := &options{
		transportConfig: transport.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.tokens == nil {
		o.tokens = auth.NewFileTokenProvider()
	}
	if o.transportConfig.Logger == nil {
		o.transportConfig.Logger = logging.NewNop()
	}

	tr := o.customTransport
	if tr == nil {
		var err error
		tr, err = transport.New(o.transportConfig)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		transport: tr,
		rt:        transport.NewRoundTripper(tr, o.transportConfig),
		tokens:    o.tokens,
		logger:    o.transportConfig.Logger,
		poolSize:  o.transportConfig.PoolSize,
		nextID:    1,
	}, nil
}

// nextRequestID allocates the next monotonic request id.
func (c *Client) nextRequestID() uint64 {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	id := c.nextID
	c.nextID++
	return id
}

// Call performs one daemon call and returns the raw result payload.
// A daemon error envelope is returned as *errors.DaemonError; transport
// failures surface as transport-category errors after retries.
func (c *Client) Call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	req, err := protocol.NewRequest(c.nextRequestID(), method, params)
	if err != nil {
		return nil, err
	}
	req.Token = c.tokens.Token()

	resp, err := c.rt.RoundTrip(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, gicserrors.NewDaemonError(method, resp.Error.Code, resp.Error.Message)
	}
	return resp.Result, nil
}

// callAck performs a call whose result must be an {"ok": bool}
// acknowledgement. A result missing the ok field is a schema mismatch,
// never a silent false.
func (c *Client) callAck(ctx context.Context, method string, params interface{}) (bool, error) {
	result, err := c.Call(ctx, method, params)
	if err != nil {
		return false, err
	}

	var ack protocol.AckResult
	if err := json.Unmarshal(result, &ack); err != nil {
		return false, gicserrors.SchemaMismatch(method, err)
	}
	if ack.Ok == nil {
		return false, gicserrors.SchemaMismatch(method, errMissingOk)
	}
	return *ack.Ok, nil
}

// Warm pre-dials up to n connections and parks them in the idle pool so
// the first calls skip connection setup. n is capped at the pool size.
func (c *Client) Warm(ctx context.Context, n int) error {
	if n > c.poolSize {
		n = c.poolSize
	}
	if n < 1 {
		return nil
	}

	conns := make([]transport.Conn, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			conn, err := c.transport.Acquire(gctx)
			if err != nil {
				return err
			}
			conns[i] = conn
			return nil
		})
	}
	err := g.Wait()

	for _, conn := range conns {
		if conn != nil {
			c.transport.Release(conn, true)
		}
	}
	return err
}

// Close releases every pooled connection. The client must not be used
// after Close; subsequent calls dial fresh connections that are closed
// on release.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.transport.CloseAll()
		c.logger.Debug("client closed")
	})
	return c.closeErr
}
