package transport

import (
	"context"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"

	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
)

// caller is the base round tripper: one acquire → write → read → decode
// cycle per call. It owns the healthy/unhealthy release decision, which is
// what keeps broken connections out of the pool.
type caller struct {
	transport Transport
}

func newCaller(tr Transport, config Config) *caller {
	return &caller{transport: tr}
}

func (c *caller) RoundTrip(ctx context.Context, req *protocol.Request) (resp *protocol.Response, err error) {
	frame, err := protocol.EncodeRequest(req)
	if err != nil {
		// An unencodable request is a caller bug, not a daemon problem.
		return nil, gicserrors.Wrap(err, gicserrors.CodeInvalidConfig,
			"request could not be encoded", gicserrors.CategoryConfig, gicserrors.SeverityCritical)
	}

	conn, err := c.transport.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	healthy := true
	defer func() {
		c.transport.Release(conn, healthy)
	}()

	if err := conn.WriteFrame(frame); err != nil {
		healthy = false
		return nil, err
	}

	line, err := conn.ReadFrame()
	if err != nil {
		healthy = false
		return nil, err
	}

	decoded, err := protocol.DecodeResponse(line)
	if err != nil {
		// The stream is out of sync; the connection cannot be trusted
		// for another request.
		healthy = false
		return nil, gicserrors.DecodeFailed(err)
	}

	// A response carrying a daemon error envelope still traveled over a
	// perfectly good connection: it goes back to the pool.
	return decoded, nil
}
