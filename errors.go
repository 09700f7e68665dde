package a2abatch

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by the typed errors below.
var (
	// ErrMissingResult is returned when a JSON-RPC response carries neither a
	// result nor an error member.
	ErrMissingResult = errors.New("response has no result")

	// ErrNullResult is returned when a JSON-RPC response carries "result": null.
	ErrNullResult = errors.New("response result is null")

	// ErrMalformedResponse is returned when a response body is not a JSON object.
	ErrMalformedResponse = errors.New("response is not a JSON object")

	// ErrInvalidMessage is returned when an input record has no usable message text.
	ErrInvalidMessage = errors.New("invalid message")
)

// ErrorKind classifies errors by the pipeline stage that raised them.
type ErrorKind string

const (
	// KindTransport indicates a network, timeout or HTTP status failure while
	// talking to the agent endpoint.
	KindTransport ErrorKind = "transport"

	// KindProtocol indicates the agent answered but the JSON-RPC response could
	// not be interpreted as a task, including JSON-RPC error responses.
	KindProtocol ErrorKind = "protocol"

	// KindValidation indicates a malformed input record.
	KindValidation ErrorKind = "validation"

	// KindConfig indicates missing or invalid configuration.
	KindConfig ErrorKind = "config"
)

// RPCError is a JSON-RPC 2.0 error object returned by an agent.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Error is a classified error with metadata for error handling decisions.
type Error struct {
	Msg   string
	Kind  ErrorKind
	Code  int       // HTTP status code, 0 if not applicable
	RPC   *RPCError // set for JSON-RPC error responses
	Cause error     // underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// NewTransportError creates an error for a failed exchange with the endpoint.
func NewTransportError(msg string, statusCode int, cause error) *Error {
	return &Error{
		Msg:   msg,
		Kind:  KindTransport,
		Code:  statusCode,
		Cause: cause,
	}
}

// NewProtocolError creates an error for an uninterpretable response.
func NewProtocolError(msg string, cause error) *Error {
	return &Error{
		Msg:   msg,
		Kind:  KindProtocol,
		Cause: cause,
	}
}

// NewRPCProtocolError creates a protocol error for a JSON-RPC error response.
func NewRPCProtocolError(rpcErr *RPCError) *Error {
	return &Error{
		Msg:   "agent returned an error",
		Kind:  KindProtocol,
		RPC:   rpcErr,
		Cause: rpcErr,
	}
}

// NewValidationError creates an error for a malformed input record.
func NewValidationError(msg string, cause error) *Error {
	return &Error{
		Msg:   msg,
		Kind:  KindValidation,
		Cause: cause,
	}
}

// NewConfigError creates an error for missing or invalid configuration.
func NewConfigError(msg string, cause error) *Error {
	return &Error{
		Msg:   msg,
		Kind:  KindConfig,
		Cause: cause,
	}
}

// KindOf returns the kind of the first classified error in err's chain,
// or "" if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsTransport returns true if the error is classified as a transport error.
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

// IsProtocol returns true if the error is classified as a protocol error.
func IsProtocol(err error) bool {
	return KindOf(err) == KindProtocol
}

// IsValidation returns true if the error is classified as a validation error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsConfig returns true if the error is classified as a configuration error.
func IsConfig(err error) bool {
	return KindOf(err) == KindConfig
}

// StatusCodeOf returns the HTTP status code from a classified error, or 0.
func StatusCodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// RPCErrorOf returns the JSON-RPC error carried by err, or nil.
func RPCErrorOf(err error) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return nil
}
