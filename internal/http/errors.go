package http

import (
	"fmt"
)

// ConnectionError reports a request that never produced an HTTP response:
// DNS failures, refused connections, TLS errors, timeouts.
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}
