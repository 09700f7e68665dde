package a2a

import (
	"bytes"
	"encoding/json"

	ab "github.com/spetersoncode/a2abatch"
)

// Response is a decoded JSON-RPC 2.0 response. Exactly one of Result and
// Error is set on a Response returned by ParseResponse.
type Response struct {
	JSONRPC string
	ID      json.RawMessage
	Result  json.RawMessage
	Error   *ab.RPCError
}

// IDString returns the echoed request id when it is a JSON string,
// or the raw id text otherwise.
func (r *Response) IDString() string {
	var s string
	if err := json.Unmarshal(r.ID, &s); err == nil {
		return s
	}
	return string(r.ID)
}

// ParseResponse decodes body as a JSON-RPC response and discriminates it:
//
//   - a non-null "error" member yields a protocol error carrying the RPC error
//   - a non-null "result" member yields a Response with Result set
//   - "result": null yields ErrNullResult
//   - neither member yields ErrMissingResult
//
// Anything that is not a JSON object yields ErrMalformedResponse.
func ParseResponse(body []byte) (*Response, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil || members == nil {
		return nil, ab.NewProtocolError("failed to parse response", ab.ErrMalformedResponse)
	}

	resp := &Response{ID: members["id"]}
	if v, ok := members["jsonrpc"]; ok {
		_ = json.Unmarshal(v, &resp.JSONRPC)
	}

	if raw, ok := members["error"]; ok && !isJSONNull(raw) {
		var rpcErr ab.RPCError
		if err := json.Unmarshal(raw, &rpcErr); err != nil {
			return nil, ab.NewProtocolError("failed to parse error member", err)
		}
		return nil, ab.NewRPCProtocolError(&rpcErr)
	}

	raw, ok := members["result"]
	switch {
	case !ok:
		return nil, ab.NewProtocolError("invalid response", ab.ErrMissingResult)
	case isJSONNull(raw):
		return nil, ab.NewProtocolError("invalid response", ab.ErrNullResult)
	}

	resp.Result = raw
	return resp, nil
}

// MapResponse extracts the task from a raw response body. The task's
// internal shape is not validated; an empty object is a valid task.
func MapResponse(body []byte) (ab.Task, error) {
	resp, err := ParseResponse(body)
	if err != nil {
		return ab.Task{}, err
	}
	return ab.NewTask(resp.Result), nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
