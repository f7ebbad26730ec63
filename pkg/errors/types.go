// Package errors provides structured error handling for the GICS client.
// It classifies failures into the retry taxonomy the transport layer
// depends on: transient transport errors are retried, daemon application
// errors and configuration errors are not.
package errors

import (
	"fmt"
	"time"
)

// Category classifies an error for retry and reporting decisions.
type Category string

const (
	CategoryTransport Category = "transport"
	CategoryTimeout   Category = "timeout"
	CategoryProtocol  Category = "protocol"
	CategoryDaemon    Category = "daemon"
	CategoryConfig    Category = "config"
)

// Severity indicates how critical an error is.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Context records where and when an error occurred.
type Context struct {
	Method    string    `json:"method,omitempty"`
	Address   string    `json:"address,omitempty"`
	Attempt   int       `json:"attempt,omitempty"`
	Component string    `json:"component,omitempty"`
	Operation string    `json:"operation,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error is the interface implemented by all GICS client errors.
type Error interface {
	error

	// Code returns the error code (daemon codes for application errors,
	// client codes for everything else).
	Code() int

	// Message returns the human-readable error message.
	Message() string

	// Category returns the error category for classification.
	Category() Category

	// Severity returns the error severity level.
	Severity() Severity

	// Context returns where the error occurred, or nil.
	Context() *Context

	// Retryable reports whether the failure is transient.
	Retryable() bool

	// WithContext returns a copy of the error carrying ctx.
	WithContext(ctx *Context) Error

	// Unwrap returns the underlying cause for errors.Is/As traversal.
	Unwrap() error
}

type baseError struct {
	code      int
	message   string
	category  Category
	severity  Severity
	retryable bool
	context   *Context
	cause     error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() int          { return e.code }
func (e *baseError) Message() string    { return e.message }
func (e *baseError) Category() Category { return e.category }
func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) Context() *Context  { return e.context }
func (e *baseError) Retryable() bool    { return e.retryable }
func (e *baseError) Unwrap() error      { return e.cause }

func (e *baseError) WithContext(ctx *Context) Error {
	newErr := *e
	if ctx != nil && ctx.Timestamp.IsZero() {
		ctx.Timestamp = time.Now()
	}
	newErr.context = ctx
	return &newErr
}

// New creates an Error with the given classification.
func New(code int, message string, category Category, severity Severity) Error {
	return &baseError{
		code:     code,
		message:  message,
		category: category,
		severity: severity,
	}
}

// Wrap wraps an underlying error with classification.
func Wrap(cause error, code int, message string, category Category, severity Severity) Error {
	return &baseError{
		code:     code,
		message:  message,
		category: category,
		severity: severity,
		cause:    cause,
	}
}

// As extracts an Error from any error.
func As(err error) (Error, bool) {
	if err == nil {
		return nil, false
	}
	ge, ok := err.(Error)
	return ge, ok
}

// IsTransient reports whether an error is a transient transport failure
// eligible for a retry. Errors that do not implement Error are treated as
// transient: an unclassified failure from the OS or the JSON decoder came
// from the transport path.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if ge, ok := As(err); ok {
		return ge.Retryable()
	}
	return true
}
