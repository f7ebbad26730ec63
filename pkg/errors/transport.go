package errors

import "fmt"

// ConnectionFailed reports a failure to open a connection to the daemon.
// Transient: the daemon may simply not be accepting yet.
func ConnectionFailed(address string, cause error) Error {
	return &baseError{
		code:      CodeConnectionFailed,
		message:   fmt.Sprintf("failed to connect to daemon at %s", address),
		category:  CategoryTransport,
		severity:  SeverityError,
		retryable: true,
		cause:     cause,
	}
}

// ConnectionLost reports a connection that was reset or closed by the
// daemon before a complete frame was read.
func ConnectionLost(address string, cause error) Error {
	return &baseError{
		code:      CodeConnectionLost,
		message:   fmt.Sprintf("daemon at %s closed the connection", address),
		category:  CategoryTransport,
		severity:  SeverityError,
		retryable: true,
		cause:     cause,
	}
}

// WriteFailed reports a write error on an established connection.
func WriteFailed(address string, cause error) Error {
	return &baseError{
		code:      CodeWriteFailed,
		message:   fmt.Sprintf("write to daemon at %s failed", address),
		category:  CategoryTransport,
		severity:  SeverityError,
		retryable: true,
		cause:     cause,
	}
}

// ReadTimeout reports that a read exceeded the per-operation deadline.
func ReadTimeout(address string, cause error) Error {
	return &baseError{
		code:      CodeReadTimeout,
		message:   fmt.Sprintf("timed out waiting for daemon at %s", address),
		category:  CategoryTimeout,
		severity:  SeverityWarning,
		retryable: true,
		cause:     cause,
	}
}

// DecodeFailed reports an undecodable response frame. Treated like a
// transport failure: the connection is out of sync and must be discarded.
func DecodeFailed(cause error) Error {
	return &baseError{
		code:      CodeDecodeFailed,
		message:   "malformed response frame from daemon",
		category:  CategoryProtocol,
		severity:  SeverityError,
		retryable: true,
		cause:     cause,
	}
}

// TransportUnavailable reports that no transport implementation exists for
// the current platform. Fatal.
func TransportUnavailable(kind string) Error {
	return &baseError{
		code:     CodeTransportUnavailable,
		message:  fmt.Sprintf("%s transport is not available on this platform", kind),
		category: CategoryConfig,
		severity: SeverityCritical,
	}
}

// InvalidConfig reports an unusable configuration value. Fatal.
func InvalidConfig(detail string) Error {
	return &baseError{
		code:     CodeInvalidConfig,
		message:  fmt.Sprintf("invalid client configuration: %s", detail),
		category: CategoryConfig,
		severity: SeverityCritical,
	}
}

// SchemaMismatch reports a well-formed response whose result payload does
// not match the method's schema. Not retried: the daemon answered, it just
// answered with something this client does not understand.
func SchemaMismatch(method string, cause error) Error {
	return &baseError{
		code:     CodeSchemaMismatch,
		message:  fmt.Sprintf("result for %s did not match the expected schema", method),
		category: CategoryProtocol,
		severity: SeverityError,
		cause:    cause,
	}
}
