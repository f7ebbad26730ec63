package protocol

// Daemon method names. The transport layer treats all of these identically;
// the names exist so the client facade and tests never spell them inline.
const (
	// Storage operations
	MethodPut    = "put"
	MethodGet    = "get"
	MethodDelete = "delete"
	MethodScan   = "scan"

	// Maintenance operations
	MethodFlush   = "flush"
	MethodCompact = "compact"
	MethodRotate  = "rotate"
	MethodVerify  = "verify"
	MethodPing    = "ping"

	// Event subscription handles (delivery is out of scope for this client)
	MethodSubscribe   = "subscribe"
	MethodUnsubscribe = "unsubscribe"

	// Analytics read methods
	MethodGetInsight           = "getInsight"
	MethodGetInsights          = "getInsights"
	MethodReportOutcome        = "reportOutcome"
	MethodGetCorrelations      = "getCorrelations"
	MethodGetClusters          = "getClusters"
	MethodGetLeadingIndicators = "getLeadingIndicators"
	MethodGetSeasonalPatterns  = "getSeasonalPatterns"
	MethodGetForecast          = "getForecast"
	MethodGetAnomalies         = "getAnomalies"
	MethodGetRecommendations   = "getRecommendations"
	MethodGetAccuracy          = "getAccuracy"
)
