package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRequestAppendsDelimiter(t *testing.T) {
	req, err := NewRequest(1, MethodPing, nil)
	require.NoError(t, err)

	frame, err := EncodeRequest(req)
	require.NoError(t, err)

	require.NotEmpty(t, frame)
	assert.Equal(t, byte(FrameDelimiter), frame[len(frame)-1])
	// Exactly one delimiter, at the end.
	assert.Equal(t, 1, countByte(frame, FrameDelimiter))

	var decoded Request
	require.NoError(t, json.Unmarshal(frame[:len(frame)-1], &decoded))
	assert.Equal(t, JSONRPCVersion, decoded.JSONRPC)
	assert.Equal(t, MethodPing, decoded.Method)
	assert.Equal(t, uint64(1), decoded.ID)
}

func TestEncodeRequestNilParamsIsEmptyObject(t *testing.T) {
	req, err := NewRequest(7, MethodFlush, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(req.Params))
}

func TestEncodeRequestOmitsEmptyToken(t *testing.T) {
	req, err := NewRequest(1, MethodPing, nil)
	require.NoError(t, err)

	frame, err := EncodeRequest(req)
	require.NoError(t, err)
	assert.NotContains(t, string(frame), "token")

	req.Token = "secret"
	frame, err = EncodeRequest(req)
	require.NoError(t, err)
	assert.Contains(t, string(frame), `"token":"secret"`)
}

func TestDecodeResponseParsesFirstLine(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"id":1,"result":{"ok":true}}`))
	require.NoError(t, err)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Result))
}

func TestDecodeResponseDiscardsTrailingBytes(t *testing.T) {
	buf := []byte("{\"id\":1,\"result\":{\"ok\":true}}\ngarbage that never parses")
	resp, err := DecodeResponse(buf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Result))
}

func TestDecodeResponseDiscardsSecondFrame(t *testing.T) {
	buf := []byte("{\"id\":1,\"result\":{\"ok\":true}}\n{\"id\":2,\"result\":{\"ok\":false}}\n")
	resp, err := DecodeResponse(buf)
	require.NoError(t, err)

	var ack AckResult
	require.NoError(t, json.Unmarshal(resp.Result, &ack))
	require.NotNil(t, ack.Ok)
	assert.True(t, *ack.Ok)
}

func TestDecodeResponseErrorEnvelope(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"id":3,"error":{"code":-32000,"message":"storage failure"}}`))
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)
	assert.Equal(t, "storage failure", resp.Error.Message)
	assert.Contains(t, resp.Error.Error(), "storage failure")
}

func TestDecodeResponseMalformedJSON(t *testing.T) {
	_, err := DecodeResponse([]byte("{not json}\n"))
	assert.Error(t, err)
}

func countByte(buf []byte, b byte) int {
	n := 0
	for _, c := range buf {
		if c == b {
			n++
		}
	}
	return n
}
