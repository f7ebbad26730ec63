package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	gicserrors "github.com/Shiloren/Gred-In-Compression-System/pkg/errors"
)

// TestLogger tests the basic logger functionality
func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, NewTextFormatter())
	logger.SetLevel(DebugLevel) // Enable debug logging

	logger.Debug("Debug message", String("key", "value"))
	logger.Info("Info message", Int("count", 42))
	logger.Warn("Warning message", Bool("flag", true))
	logger.Error("Error message", ErrorField(errors.New("test error")))

	output := buf.String()

	if !strings.Contains(output, "Debug message") {
		t.Error("Expected debug message in output")
	}
	if !strings.Contains(output, "Info message") {
		t.Error("Expected info message in output")
	}
	if !strings.Contains(output, "Warning message") {
		t.Error("Expected warning message in output")
	}
	if !strings.Contains(output, "Error message") {
		t.Error("Expected error message in output")
	}

	if !strings.Contains(output, "key=value") {
		t.Error("Expected key=value in output")
	}
	if !strings.Contains(output, "count=42") {
		t.Error("Expected count=42 in output")
	}
	if !strings.Contains(output, "flag=true") {
		t.Error("Expected flag=true in output")
	}
	if !strings.Contains(output, "error=test error") {
		t.Error("Expected error=test error in output")
	}
}

// TestLogLevels tests log level filtering
func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, NewTextFormatter())

	logger.SetLevel(WarnLevel)

	logger.Debug("Debug message")
	logger.Info("Info message")
	logger.Warn("Warning message")
	logger.Error("Error message")

	output := buf.String()

	if strings.Contains(output, "Debug message") {
		t.Error("Debug message should be filtered out")
	}
	if strings.Contains(output, "Info message") {
		t.Error("Info message should be filtered out")
	}
	if !strings.Contains(output, "Warning message") {
		t.Error("Expected warning message in output")
	}
	if !strings.Contains(output, "Error message") {
		t.Error("Expected error message in output")
	}
}

// TestWithFields tests logging with persistent fields
func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, NewTextFormatter())

	child := logger.WithFields(String("component", "transport"), String("operation", "acquire"))
	child.Info("Connection opened")

	output := buf.String()

	if !strings.Contains(output, "transport/acquire") {
		t.Errorf("Expected component/operation header, got: %s", output)
	}
	if !strings.Contains(output, "Connection opened") {
		t.Error("Expected message in output")
	}

	// The parent logger is unchanged.
	buf.Reset()
	logger.Info("Plain message")
	if strings.Contains(buf.String(), "transport") {
		t.Error("Parent logger must not inherit child fields")
	}
}

// TestWithError tests error context extraction
func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, NewTextFormatter())

	err := gicserrors.ConnectionFailed("/tmp/gics.sock", errors.New("connection refused"))
	logger.WithError(err).Error("Call failed")

	output := buf.String()

	if !strings.Contains(output, "error_code=") {
		t.Errorf("Expected error_code field, got: %s", output)
	}
	if !strings.Contains(output, "error_category=transport") {
		t.Errorf("Expected error_category field, got: %s", output)
	}
}

// TestJSONFormatter tests JSON output
func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, NewJSONFormatter())

	logger.Info("Structured message", String("method", "put"), Uint64("request_id", 7))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if entry["level"] != "INFO" {
		t.Errorf("Expected level INFO, got %v", entry["level"])
	}
	if entry["message"] != "Structured message" {
		t.Errorf("Expected message, got %v", entry["message"])
	}
	if entry["method"] != "put" {
		t.Errorf("Expected method field, got %v", entry["method"])
	}
	if entry["request_id"] != float64(7) {
		t.Errorf("Expected request_id field, got %v", entry["request_id"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("Expected timestamp field")
	}
}

// TestNopLogger tests that the nop logger discards everything
func TestNopLogger(t *testing.T) {
	logger := NewNop()

	// Must not panic and must accept every call.
	logger.Debug("discarded")
	logger.Info("discarded")
	logger.Warn("discarded")
	logger.Error("discarded")
	logger.WithFields(String("k", "v")).Info("discarded")
	logger.WithError(errors.New("discarded")).Error("discarded")

	if logger.GetLevel() != InfoLevel {
		t.Error("Nop logger should report info level")
	}
}
