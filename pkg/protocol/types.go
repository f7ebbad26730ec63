package protocol

import "encoding/json"

// Parameter shapes for each daemon method. Optional keys are omitted from
// the encoded params object entirely rather than sent as null, matching the
// daemon's expectations.

// PutParams stores a record under a key.
type PutParams struct {
	Key    string                 `json:"key"`
	Fields map[string]interface{} `json:"fields"`
}

// KeyParams addresses a single record. Used by get, delete and getInsight.
type KeyParams struct {
	Key string `json:"key"`
}

// ScanParams lists records whose keys start with Prefix. An empty prefix
// scans everything.
type ScanParams struct {
	Prefix string `json:"prefix"`
}

// VerifyParams optionally restricts verification to one storage tier.
type VerifyParams struct {
	Tier string `json:"tier,omitempty"`
}

// InsightQueryParams filters insights by type.
type InsightQueryParams struct {
	Type string `json:"type,omitempty"`
}

// OutcomeParams reports the observed outcome of an insight back to the
// daemon's accuracy tracking.
type OutcomeParams struct {
	InsightID string `json:"insightId"`
	Result    string `json:"result"`
	Context   string `json:"context,omitempty"`
}

// CorrelationParams optionally scopes correlation or indicator queries to
// one key.
type CorrelationParams struct {
	Key string `json:"key,omitempty"`
}

// ForecastParams requests a forecast for one field of one record.
type ForecastParams struct {
	Key     string `json:"key"`
	Field   string `json:"field"`
	Horizon *int   `json:"horizon,omitempty"`
}

// AnomalyParams optionally bounds the anomaly query to events after Since
// (milliseconds since epoch).
type AnomalyParams struct {
	Since *int64 `json:"since,omitempty"`
}

// RecommendationParams filters recommendations by type and target.
type RecommendationParams struct {
	Type   string `json:"type,omitempty"`
	Target string `json:"target,omitempty"`
}

// AccuracyParams scopes an accuracy report.
type AccuracyParams struct {
	InsightType string `json:"insightType,omitempty"`
	Scope       string `json:"scope,omitempty"`
}

// SubscribeParams names the event types a subscription covers.
type SubscribeParams struct {
	Events []string `json:"events"`
}

// UnsubscribeParams tears down a subscription by handle.
type UnsubscribeParams struct {
	SubscriptionID string `json:"subscriptionId"`
}

// Result schemas. Fields the client extracts are pointers so a response
// missing them decodes to nil and fails as a schema mismatch instead of
// silently defaulting.

// AckResult acknowledges a mutating operation.
type AckResult struct {
	Ok *bool `json:"ok"`
}

// Record is one stored entry: a key plus its field map.
type Record struct {
	Key    string                 `json:"key"`
	Fields map[string]interface{} `json:"fields"`
}

// ScanResult lists the records matching a prefix.
type ScanResult struct {
	Items []Record `json:"items"`
}

// SubscribeResult carries the handle for a newly created subscription.
type SubscribeResult struct {
	SubscriptionID *string `json:"subscriptionId"`
}

// Report is an opaque result payload from maintenance and analytics
// methods. The daemon owns these shapes; the client passes them through.
type Report = json.RawMessage
