package stationapi

import (
	"errors"
	"fmt"
)

// ErrUnavailable matches every error raised when the station API could not be reached.
var ErrUnavailable = errors.New("station api unavailable")

// TransportError is a failure that produced no HTTP response: connection refused,
// DNS failure or timeout.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: station api unreachable: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

// APIError is a non-2xx response from the station API.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: station api error: status=%d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: station api error: status=%d, message=%s", e.Op, e.StatusCode, e.Message)
}

// IsTransport reports whether err means the station API was unreachable.
func IsTransport(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// AsAPIError extracts an APIError from the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorBody covers the error payload shapes the station API returns.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b *errorBody) text() string {
	if b == nil {
		return ""
	}
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}
