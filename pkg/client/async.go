package client

import (
	"context"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"
)

// Future is the result of an asynchronous call. It resolves exactly once;
// Wait may be called any number of times and always returns the same
// outcome.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Wait blocks until the call completes or ctx is cancelled. On
// cancellation the underlying call keeps running; its outcome is
// discarded.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the call completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// async runs fn on a background goroutine and returns its future.
func async[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		value, err := fn(ctx)
		f.resolve(value, err)
	}()
	return f
}

// PutAsync is the asynchronous form of Put.
func (c *Client) PutAsync(ctx context.Context, key string, fields map[string]interface{}) *Future[bool] {
	return async(ctx, func(ctx context.Context) (bool, error) {
		return c.Put(ctx, key, fields)
	})
}

// GetAsync is the asynchronous form of Get.
func (c *Client) GetAsync(ctx context.Context, key string) *Future[*protocol.Record] {
	return async(ctx, func(ctx context.Context) (*protocol.Record, error) {
		return c.Get(ctx, key)
	})
}

// DeleteAsync is the asynchronous form of Delete.
func (c *Client) DeleteAsync(ctx context.Context, key string) *Future[bool] {
	return async(ctx, func(ctx context.Context) (bool, error) {
		return c.Delete(ctx, key)
	})
}

// ScanAsync is the asynchronous form of Scan.
func (c *Client) ScanAsync(ctx context.Context, prefix string) *Future[[]protocol.Record] {
	return async(ctx, func(ctx context.Context) ([]protocol.Record, error) {
		return c.Scan(ctx, prefix)
	})
}

// FlushAsync is the asynchronous form of Flush.
func (c *Client) FlushAsync(ctx context.Context) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.Flush(ctx)
	})
}

// CompactAsync is the asynchronous form of Compact.
func (c *Client) CompactAsync(ctx context.Context) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.Compact(ctx)
	})
}

// RotateAsync is the asynchronous form of Rotate.
func (c *Client) RotateAsync(ctx context.Context) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.Rotate(ctx)
	})
}

// VerifyAsync is the asynchronous form of Verify.
func (c *Client) VerifyAsync(ctx context.Context, tier string) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.Verify(ctx, tier)
	})
}

// PingAsync is the asynchronous form of Ping.
func (c *Client) PingAsync(ctx context.Context) *Future[struct{}] {
	return async(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.Ping(ctx)
	})
}

// SubscribeAsync is the asynchronous form of Subscribe.
func (c *Client) SubscribeAsync(ctx context.Context, events []string) *Future[string] {
	return async(ctx, func(ctx context.Context) (string, error) {
		return c.Subscribe(ctx, events)
	})
}

// UnsubscribeAsync is the asynchronous form of Unsubscribe.
func (c *Client) UnsubscribeAsync(ctx context.Context, subscriptionID string) *Future[bool] {
	return async(ctx, func(ctx context.Context) (bool, error) {
		return c.Unsubscribe(ctx, subscriptionID)
	})
}

// GetInsightAsync is the asynchronous form of GetInsight.
func (c *Client) GetInsightAsync(ctx context.Context, key string) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetInsight(ctx, key)
	})
}

// GetInsightsAsync is the asynchronous form of GetInsights.
func (c *Client) GetInsightsAsync(ctx context.Context, insightType string) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetInsights(ctx, insightType)
	})
}

// ReportOutcomeAsync is the asynchronous form of ReportOutcome.
func (c *Client) ReportOutcomeAsync(ctx context.Context, insightID, result, outcomeContext string) *Future[bool] {
	return async(ctx, func(ctx context.Context) (bool, error) {
		return c.ReportOutcome(ctx, insightID, result, outcomeContext)
	})
}

// GetCorrelationsAsync is the asynchronous form of GetCorrelations.
func (c *Client) GetCorrelationsAsync(ctx context.Context, key string) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetCorrelations(ctx, key)
	})
}

// GetClustersAsync is the asynchronous form of GetClusters.
func (c *Client) GetClustersAsync(ctx context.Context) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetClusters(ctx)
	})
}

// GetLeadingIndicatorsAsync is the asynchronous form of GetLeadingIndicators.
func (c *Client) GetLeadingIndicatorsAsync(ctx context.Context, key string) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetLeadingIndicators(ctx, key)
	})
}

// GetSeasonalPatternsAsync is the asynchronous form of GetSeasonalPatterns.
func (c *Client) GetSeasonalPatternsAsync(ctx context.Context, key string) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetSeasonalPatterns(ctx, key)
	})
}

// GetForecastAsync is the asynchronous form of GetForecast.
func (c *Client) GetForecastAsync(ctx context.Context, key, field string, horizon int) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetForecast(ctx, key, field, horizon)
	})
}

// GetAnomaliesAsync is the asynchronous form of GetAnomalies.
func (c *Client) GetAnomaliesAsync(ctx context.Context, since int64) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetAnomalies(ctx, since)
	})
}

// GetRecommendationsAsync is the asynchronous form of GetRecommendations.
func (c *Client) GetRecommendationsAsync(ctx context.Context, recommendationType, target string) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetRecommendations(ctx, recommendationType, target)
	})
}

// GetAccuracyAsync is the asynchronous form of GetAccuracy.
func (c *Client) GetAccuracyAsync(ctx context.Context, insightType, scope string) *Future[protocol.Report] {
	return async(ctx, func(ctx context.Context) (protocol.Report, error) {
		return c.GetAccuracy(ctx, insightType, scope)
	})
}
