package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientMetricsDefaults(t *testing.T) {
	m, err := NewClientMetrics(MetricsConfig{})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.NotNil(t, m.Handler())
}

func TestNewClientMetricsExternalRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewClientMetrics(MetricsConfig{Registerer: reg})
	require.NoError(t, err)

	// No private registry means no HTTP handler of our own.
	assert.Nil(t, m.Handler())

	m.RecordRequest("put", "success", 2*time.Millisecond)
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewClientMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewClientMetrics(MetricsConfig{Registerer: reg})
	require.NoError(t, err)

	_, err = NewClientMetrics(MetricsConfig{Registerer: reg})
	assert.Error(t, err)
}

func TestClientMetricsRecording(t *testing.T) {
	m, err := NewClientMetrics(MetricsConfig{})
	require.NoError(t, err)

	m.RecordRequest("get", "success", time.Millisecond)
	m.RecordRequest("get", "success", time.Millisecond)
	m.RecordRequest("get", "daemon_error", time.Millisecond)
	m.RecordRetry("get")
	m.ConnOpened()
	m.ConnOpened()
	m.ConnClosed()
	m.SetIdleConns(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("get", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("get", "daemon_error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.retriesTotal.WithLabelValues("get")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.connectionsOpened))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.connectionsClosed))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.idleConnections))
}
