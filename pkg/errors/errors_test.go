package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportErrorsAreTransient(t *testing.T) {
	cause := stderrors.New("connection refused")

	for _, err := range []Error{
		ConnectionFailed("/tmp/gics.sock", cause),
		ConnectionLost("/tmp/gics.sock", cause),
		WriteFailed("/tmp/gics.sock", cause),
		ReadTimeout("/tmp/gics.sock", cause),
		DecodeFailed(cause),
	} {
		assert.True(t, err.Retryable(), "%d should be retryable", err.Code())
		assert.True(t, IsTransient(err))
	}

	assert.Equal(t, CategoryTransport, ConnectionFailed("/tmp/gics.sock", cause).Category())
	assert.Equal(t, CategoryTimeout, ReadTimeout("/tmp/gics.sock", cause).Category())
	assert.Equal(t, CategoryProtocol, DecodeFailed(cause).Category())
}

func TestConfigErrorsAreNotTransient(t *testing.T) {
	for _, err := range []Error{
		TransportUnavailable("named pipe"),
		InvalidConfig("bad address"),
		SchemaMismatch("put", stderrors.New("missing ok")),
	} {
		assert.False(t, err.Retryable(), "%d should not be retryable", err.Code())
		assert.False(t, IsTransient(err))
	}
}

func TestDaemonErrorClassification(t *testing.T) {
	err := NewDaemonError("get", -32001, "key not found")

	assert.False(t, err.Retryable())
	assert.False(t, IsTransient(err))
	assert.Equal(t, CategoryDaemon, err.Category())
	assert.Contains(t, err.Error(), "key not found")

	daemonErr, ok := IsDaemonError(err)
	require.True(t, ok)
	assert.Equal(t, -32001, daemonErr.ErrCode)
	assert.Equal(t, "get", daemonErr.Method)
}

func TestIsDaemonErrorRejectsOtherErrors(t *testing.T) {
	_, ok := IsDaemonError(ConnectionFailed("/tmp/gics.sock", nil))
	assert.False(t, ok)

	_, ok = IsDaemonError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestUnclassifiedErrorsAreTransient(t *testing.T) {
	// Unknown failures get the retry benefit of the doubt.
	assert.True(t, IsTransient(stderrors.New("mystery")))
	assert.False(t, IsTransient(nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("read: connection reset by peer")
	err := ConnectionLost("/tmp/gics.sock", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAsFindsWrappedError(t *testing.T) {
	inner := InvalidConfig("bad address")

	classified, ok := As(inner)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidConfig, classified.Code())

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestWithContextCarriesOperation(t *testing.T) {
	err := ConnectionFailed("/tmp/gics.sock", nil).WithContext(&Context{
		Operation: "acquire",
		Component: "socket",
	})

	require.NotNil(t, err.Context())
	assert.Equal(t, "acquire", err.Context().Operation)
	assert.True(t, err.Retryable(), "context must not change classification")
}
