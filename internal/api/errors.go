package api

import (
	"fmt"

	"bitget-margin-info/internal/model"
)

// TransportError means no HTTP response was obtained: the request could not be
// built, the connection failed, or the context ended.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bitget %s: request failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a response with a status other than 200.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bitget %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// DecodeError is a 200 response whose body is not a JSON object.
type DecodeError struct {
	Endpoint string
	Body     string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bitget %s: decode response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APICodeError is a 200 response whose envelope code is not "00000".
type APICodeError struct {
	Endpoint string
	Code     string
	Msg      string
}

func (e *APICodeError) Error() string {
	return fmt.Sprintf("bitget %s: api code %s: %s", e.Endpoint, e.Code, e.Msg)
}

// CheckCode turns a non-success envelope into an *APICodeError.
func CheckCode(endpoint string, p model.Payload) error {
	if p.OK() {
		return nil
	}
	return &APICodeError{Endpoint: endpoint, Code: p.Code(), Msg: p.Msg()}
}
