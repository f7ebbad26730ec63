package protocol

import (
	"encoding/json"
	"fmt"
)

const (
	// JSONRPCVersion is the protocol marker carried by every request.
	JSONRPCVersion = "2.0"
)

// Request represents one call to the daemon. Params is kept as raw JSON so
// the transport layer never interprets method-specific payloads.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      uint64          `json:"id"`
	Token   string          `json:"token,omitempty"`
}

// NewRequest builds a request for the given method. A nil params value is
// encoded as an empty object, matching what the daemon expects.
func NewRequest(id uint64, method string, params interface{}) (*Request, error) {
	paramsJSON := json.RawMessage(`{}`)
	if params != nil {
		var err error
		paramsJSON, err = json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params for %s: %w", method, err)
		}
	}

	return &Request{
		JSONRPC: JSONRPCVersion,
		Method:  method,
		Params:  paramsJSON,
		ID:      id,
	}, nil
}

// Response represents the daemon's reply to a single request. Exactly one of
// Result or Error is set on a well-formed response.
type Response struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorObject    `json:"error,omitempty"`
}

// ErrorObject is the daemon's error envelope.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface so an envelope can travel as a Go
// error when callers want the raw daemon failure.
func (e *ErrorObject) Error() string {
	return fmt.Sprintf("gics error %d: %s", e.Code, e.Message)
}
