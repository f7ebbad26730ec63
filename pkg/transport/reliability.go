package transport

import (
	"context"
	"time"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/logging"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"

	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
)

// ReliabilityMiddleware retries transient transport failures: connection
// refused, reset, timeouts, undecodable frames. The delay between attempts
// is fixed; the daemon is local, so unavailability windows are short
// (process restart, accept backlog) rather than congestion-shaped.
//
// Failures the daemon reports inside a well-formed response envelope are
// not errors at this layer and pass through untouched on the first attempt.
type ReliabilityMiddleware struct {
	maxRetries int
	delay      time.Duration
	logger     logging.Logger
	metrics    RequestMetrics
}

// NewReliabilityMiddleware creates the retry middleware from config.
func NewReliabilityMiddleware(config Config) Middleware {
	return &ReliabilityMiddleware{
		maxRetries: config.MaxRetries,
		delay:      config.RetryDelay,
		logger:     config.Logger,
		metrics:    config.RequestMetrics,
	}
}

// Wrap implements the Middleware interface
func (rm *ReliabilityMiddleware) Wrap(next RoundTripper) RoundTripper {
	return &reliabilityRoundTripper{next: next, middleware: rm}
}

type reliabilityRoundTripper struct {
	next       RoundTripper
	middleware *ReliabilityMiddleware
}

func (rt *reliabilityRoundTripper) RoundTrip(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	rm := rt.middleware

	var lastErr error
	maxAttempts := rm.maxRetries + 1

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if attempt > 0 {
			rm.logger.Debug("retrying request",
				logging.String("method", req.Method),
				logging.Uint64("request_id", req.ID),
				logging.Int("attempt", attempt+1),
				logging.Duration("delay", rm.delay),
				logging.ErrorField(lastErr),
			)
			if rm.metrics != nil {
				rm.metrics.RecordRetry(req.Method)
			}

			select {
			case <-time.After(rm.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := rt.next.RoundTrip(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if !gicserrors.IsTransient(err) {
			return nil, err
		}
	}

	// Retry budget spent: the caller gets the last observed transport
	// error, not a partial result.
	return nil, lastErr
}
