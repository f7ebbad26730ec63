package transport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/logging"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"

	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
)

// ObservabilityMiddleware adds structured logging, metrics, and optional
// tracing to every call. It sits outside the retry middleware, so one
// logical call produces one log pair, one metric sample, and one span no
// matter how many attempts the retry layer burned.
type ObservabilityMiddleware struct {
	logger  logging.Logger
	metrics RequestMetrics
	tracer  trace.Tracer
}

// NewObservabilityMiddleware creates the observability middleware from
// config.
func NewObservabilityMiddleware(config Config) Middleware {
	return &ObservabilityMiddleware{
		logger:  config.Logger,
		metrics: config.RequestMetrics,
		tracer:  config.Tracer,
	}
}

// Wrap implements the Middleware interface
func (om *ObservabilityMiddleware) Wrap(next RoundTripper) RoundTripper {
	return &observabilityRoundTripper{next: next, middleware: om}
}

type observabilityRoundTripper struct {
	next       RoundTripper
	middleware *ObservabilityMiddleware
}

func (rt *observabilityRoundTripper) RoundTrip(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	om := rt.middleware
	start := time.Now()

	// The call id correlates log lines across retries; the integer
	// request id stays scoped to the wire protocol.
	logger := om.logger.WithFields(
		logging.String("call_id", uuid.NewString()),
		logging.String("method", req.Method),
		logging.Uint64("request_id", req.ID),
	)
	logger.Debug("sending request")

	var span trace.Span
	if om.tracer != nil {
		ctx, span = om.tracer.Start(ctx, "gics.call",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("rpc.method", req.Method),
				attribute.Int64("rpc.request_id", int64(req.ID)),
			),
		)
		defer span.End()
	}

	resp, err := rt.next.RoundTrip(ctx, req)
	duration := time.Since(start)

	status := callStatus(resp, err)
	if om.metrics != nil {
		om.metrics.RecordRequest(req.Method, status, duration)
	}

	switch {
	case err != nil:
		logger.WithError(err).Error("request failed", logging.Duration("duration", duration))
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	case resp.Error != nil:
		logger.Warn("daemon rejected request",
			logging.Duration("duration", duration),
			logging.Int("daemon_code", resp.Error.Code),
		)
		if span != nil {
			span.SetStatus(codes.Error, resp.Error.Message)
		}
	default:
		logger.Debug("request succeeded", logging.Duration("duration", duration))
		if span != nil {
			span.SetStatus(codes.Ok, "")
		}
	}

	return resp, err
}

func callStatus(resp *protocol.Response, err error) string {
	switch {
	case err == nil && resp != nil && resp.Error != nil:
		return "daemon_error"
	case err == nil:
		return "success"
	default:
		if ge, ok := gicserrors.As(err); ok && ge.Category() == gicserrors.CategoryTimeout {
			return "timeout"
		}
		return "transport_error"
	}
}
