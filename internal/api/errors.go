package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a request failure
type ErrorKind string

const (
	// ErrorKindNetwork covers connectivity and response-parse failures
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindApplication covers non-2xx responses carrying a server message
	ErrorKindApplication ErrorKind = "application"
	// ErrorKindAuth covers 401s that survived the refresh-and-retry cycle
	ErrorKindAuth ErrorKind = "auth"
)

// Error is the tagged failure every client operation returns. It never
// crosses the component boundary as a panic.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain; the second
// return is false for errors that did not originate in this client.
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}

func networkError(err error) *Error {
	return &Error{Kind: ErrorKindNetwork, Message: "network error", Err: err}
}

func applicationError(status int, message string) *Error {
	if message == "" {
		message = "request failed"
	}
	return &Error{Kind: ErrorKindApplication, StatusCode: status, Message: message}
}

func authError(message string) *Error {
	if message == "" {
		message = "authentication failed"
	}
	return &Error{Kind: ErrorKindAuth, StatusCode: 401, Message: message}
}
