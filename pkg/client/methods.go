package client

import (
	"bytes"
	"context"
	"encoding/json"

	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"
)

var jsonNull = []byte("null")

// Put stores a record under key, replacing any previous value.
func (c *Client) Put(ctx context.Context, key string, fields map[string]interface{}) (bool, error) {
	return c.callAck(ctx, protocol.MethodPut, protocol.PutParams{Key: key, Fields: fields})
}

// Get fetches the record stored under key. A missing key returns
// (nil, nil).
func (c *Client) Get(ctx context.Context, key string) (*protocol.Record, error) {
	result, err := c.Call(ctx, protocol.MethodGet, protocol.KeyParams{Key: key})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || bytes.Equal(result, jsonNull) {
		return nil, nil
	}

	var record protocol.Record
	if err := json.Unmarshal(result, &record); err != nil {
		return nil, gicserrors.SchemaMismatch(protocol.MethodGet, err)
	}
	return &record, nil
}

// Delete removes the record stored under key.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	return c.callAck(ctx, protocol.MethodDelete, protocol.KeyParams{Key: key})
}

// Scan lists the records whose keys start with prefix. An empty prefix
// lists everything.
func (c *Client) Scan(ctx context.Context, prefix string) ([]protocol.Record, error) {
	result, err := c.Call(ctx, protocol.MethodScan, protocol.ScanParams{Prefix: prefix})
	if err != nil {
		return nil, err
	}

	var scan protocol.ScanResult
	if err := json.Unmarshal(result, &scan); err != nil {
		return nil, gicserrors.SchemaMismatch(protocol.MethodScan, err)
	}
	return scan.Items, nil
}

// Flush forces the daemon to persist buffered writes.
func (c *Client) Flush(ctx context.Context) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodFlush, nil)
}

// Compact triggers a storage compaction cycle.
func (c *Client) Compact(ctx context.Context) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodCompact, nil)
}

// Rotate rotates the daemon's active storage segment.
func (c *Client) Rotate(ctx context.Context) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodRotate, nil)
}

// Verify checks storage integrity. An empty tier verifies every tier.
func (c *Client) Verify(ctx context.Context, tier string) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodVerify, protocol.VerifyParams{Tier: tier})
}

// Ping checks daemon liveness over a full round trip.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Call(ctx, protocol.MethodPing, nil)
	return err
}

// Subscribe registers interest in the given event types and returns the
// subscription handle.
func (c *Client) Subscribe(ctx context.Context, events []string) (string, error) {
	result, err := c.Call(ctx, protocol.MethodSubscribe, protocol.SubscribeParams{Events: events})
	if err != nil {
		return "", err
	}

	var sub protocol.SubscribeResult
	if err := json.Unmarshal(result, &sub); err != nil {
		return "", gicserrors.SchemaMismatch(protocol.MethodSubscribe, err)
	}
	if sub.SubscriptionID == nil {
		return "", gicserrors.SchemaMismatch(protocol.MethodSubscribe, errMissingSubscriptionID)
	}
	return *sub.SubscriptionID, nil
}

// Unsubscribe tears down a subscription by handle.
func (c *Client) Unsubscribe(ctx context.Context, subscriptionID string) (bool, error) {
	return c.callAck(ctx, protocol.MethodUnsubscribe, protocol.UnsubscribeParams{SubscriptionID: subscriptionID})
}

// GetInsight returns the daemon's insight for one key.
func (c *Client) GetInsight(ctx context.Context, key string) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodGetInsight, protocol.KeyParams{Key: key})
}

// GetInsights lists insights, optionally filtered by type.
func (c *Client) GetInsights(ctx context.Context, insightType string) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodGetInsights, protocol.InsightQueryParams{Type: insightType})
}

// ReportOutcome feeds an observed outcome back into the daemon's
// accuracy tracking. Context may be empty.
func (c *Client) ReportOutcome(ctx context.Context, insightID, result, outcomeContext string) (bool, error) {
	return c.callAck(ctx, protocol.MethodReportOutcome, protocol.OutcomeParams{
		InsightID: insightID,
		Result:    result,
		Context:   outcomeContext,
	})
}

// GetCorrelations returns correlation analysis, optionally scoped to key.
func (c *Client) GetCorrelations(ctx context.Context, key string) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodGetCorrelations, protocol.CorrelationParams{Key: key})
}

// GetClusters returns the daemon's record clustering.
func (c *Client) GetClusters(ctx context.Context) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodGetClusters, nil)
}

// GetLeadingIndicators returns leading-indicator analysis, optionally
// scoped to key.
func (c *Client) GetLeadingIndicators(ctx context.Context, key string) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodGetLeadingIndicators, protocol.CorrelationParams{Key: key})
}

// GetSeasonalPatterns returns seasonality analysis, optionally scoped
// to key.
func (c *Client) GetSeasonalPatterns(ctx context.Context, key string) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodGetSeasonalPatterns, protocol.CorrelationParams{Key: key})
}

// GetForecast forecasts one field of one record. A horizon of zero or
// less leaves the horizon to the daemon's default.
func (c *Client) GetForecast(ctx context.Context, key, field string, horizon int) (protocol.Report, error) {
	params := protocol.ForecastParams{Key: key, Field: field}
	if horizon > 0 {
		params.Horizon = &horizon
	}
	return c.Call(ctx, protocol.MethodGetForecast, params)
}

// GetAnomalies lists detected anomalies. A since of zero or less means
// no lower time bound; otherwise since is milliseconds since epoch.
func (c *Client) GetAnomalies(ctx context.Context, since int64) (protocol.Report, error) {
	var params protocol.AnomalyParams
	if since > 0 {
		params.Since = &since
	}
	return c.Call(ctx, protocol.MethodGetAnomalies, params)
}

// GetRecommendations lists recommendations, optionally filtered by type
// and target.
func (c *Client) GetRecommendations(ctx context.Context, recommendationType, target string) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodGetRecommendations, protocol.RecommendationParams{
		Type:   recommendationType,
		Target: target,
	})
}

// GetAccuracy reports insight accuracy, optionally scoped by insight
// type and scope.
func (c *Client) GetAccuracy(ctx context.Context, insightType, scope string) (protocol.Report, error) {
	return c.Call(ctx, protocol.MethodGetAccuracy, protocol.AccuracyParams{
		InsightType: insightType,
		Scope:       scope,
	})
}
