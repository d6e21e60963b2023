package client

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Error is an inference failure carrying the HTTP status the API should answer with.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newConfigError(err error) *Error {
	return &Error{StatusCode: http.StatusInternalServerError, Message: "the AI model is not configured on the server", Err: err}
}

func newAuthError(message string) *Error {
	return &Error{StatusCode: http.StatusUnauthorized, Message: message}
}

func newTimeoutError(message string, err error) *Error {
	return &Error{StatusCode: http.StatusGatewayTimeout, Message: message, Err: err}
}

func newNetworkError(message string, err error) *Error {
	return &Error{StatusCode: http.StatusServiceUnavailable, Message: message, Err: err}
}

func newResponseError(message string) *Error {
	return &Error{StatusCode: http.StatusBadGateway, Message: message}
}

// StatusCode returns the status carried by err, or 500 for anything else.
func StatusCode(err error) int {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}
	return http.StatusInternalServerError
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
