package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FrameDelimiter terminates every frame on the wire.
const FrameDelimiter = '\n'

// EncodeRequest serializes a request into a single newline-terminated frame.
func EncodeRequest(req *Request) ([]byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request %d (%s): %w", req.ID, req.Method, err)
	}
	return append(data, FrameDelimiter), nil
}

// DecodeResponse parses the first newline-terminated JSON object out of a
// response buffer. Bytes after the first delimiter are discarded: with one
// in-flight request per connection the daemon never pipelines a second
// frame, so there is nothing to carry over (see the package doc).
//
// The input may or may not still contain the trailing delimiter.
func DecodeResponse(buf []byte) (*Response, error) {
	line := buf
	if i := bytes.IndexByte(buf, FrameDelimiter); i >= 0 {
		line = buf[:i]
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response frame: %w", err)
	}
	return &resp, nil
}
