package errors

import "fmt"

// DaemonError is an application-level failure surfaced by the daemon inside
// a well-formed response envelope. It is never retried: the transport round
// trip succeeded, the daemon itself rejected the call.
type DaemonError struct {
	ErrCode    int
	ErrMessage string
	Method     string
}

// NewDaemonError builds a DaemonError from the daemon's error envelope.
func NewDaemonError(method string, code int, message string) *DaemonError {
	if message == "" {
		message = "unknown error"
	}
	return &DaemonError{ErrCode: code, ErrMessage: message, Method: method}
}

func (e *DaemonError) Error() string {
	return fmt.Sprintf("gics error %d: %s", e.ErrCode, e.ErrMessage)
}

func (e *DaemonError) Code() int          { return e.ErrCode }
func (e *DaemonError) Message() string    { return e.ErrMessage }
func (e *DaemonError) Category() Category { return CategoryDaemon }
func (e *DaemonError) Severity() Severity { return SeverityError }
func (e *DaemonError) Context() *Context  { return nil }
func (e *DaemonError) Retryable() bool    { return false }
func (e *DaemonError) Unwrap() error      { return nil }

// WithContext returns the error unchanged; daemon errors already carry the
// method that produced them.
func (e *DaemonError) WithContext(ctx *Context) Error { return e }

// IsDaemonError reports whether err is an application error from the
// daemon, extracting it if so.
func IsDaemonError(err error) (*DaemonError, bool) {
	de, ok := err.(*DaemonError)
	return de, ok
}
