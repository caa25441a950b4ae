package avatax

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Static errors for err113 compliance.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConfiguration   = errors.New("invalid configuration")
	ErrAsyncPanic      = errors.New("asynchronous call panicked")
	ErrUnexpectedType  = errors.New("unexpected response type")
)

// APIError is the structured error returned for every failed call: an HTTP
// status outside [200, 299], an undecodable success body, or a transport
// failure that never produced a response.
//
// For transport failures StatusCode is 0 and both Headers and Body are nil.
type APIError struct {
	// Operation names the API operation, e.g. "ShippingVerification.VerifyShipment".
	Operation string
	// StatusCode is the HTTP status code, 0 when no response was received.
	StatusCode int
	// Headers are the response headers, nil when no response was received.
	Headers http.Header
	// Body is the raw response body, nil when no response was received.
	Body []byte
	// Detail holds the decoded error payload when the operation documents a
	// typed shape for StatusCode. Use ErrorDetail to read it.
	Detail any
	// Err is the underlying transport or decoding error, if any.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("avatax: %s: transport failure: %v", e.Operation, e.Err)
	}

	msg := e.message()
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if msg == "" {
		return fmt.Sprintf("avatax: %s: HTTP %d", e.Operation, e.StatusCode)
	}

	return fmt.Sprintf("avatax: %s: HTTP %d: %s", e.Operation, e.StatusCode, msg)
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsTransportFailure reports whether the call failed before any response arrived.
func (e *APIError) IsTransportFailure() bool {
	return e.StatusCode == 0 && e.Headers == nil && e.Body == nil
}

// message pulls a human readable message out of the known error body shapes.
func (e *APIError) message() string {
	if len(e.Body) == 0 || !gjson.ValidBytes(e.Body) {
		return strings.TrimSpace(string(e.Body))
	}

	for _, path := range []string{"error.message", "message", "error_description", "error"} {
		result := gjson.GetBytes(e.Body, path)
		if result.Type == gjson.String && result.String() != "" {
			return result.String()
		}
	}

	return ""
}

// InvalidArgumentError reports a missing, empty, or malformed call parameter.
// It is always raised before any network activity.
type InvalidArgumentError struct {
	Operation string
	Parameter string
	Reason    string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("avatax: %s: invalid argument %q: %s", e.Operation, e.Parameter, e.Reason)
}

// Is matches ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ConfigurationError reports an invalid client configuration. It is raised at
// construction time, never at call time.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "avatax: invalid configuration: " + e.Reason
	}

	return fmt.Sprintf("avatax: invalid configuration %s: %s", e.Field, e.Reason)
}

// Is matches ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ErrorDetail returns the typed error payload attached to an APIError in err's
// chain, if it has type *T.
func ErrorDetail[T any](err error) (*T, bool) {
	apiErr := &APIError{}
	if !errors.As(err, &apiErr) || apiErr.Detail == nil {
		return nil, false
	}

	detail, ok := apiErr.Detail.(*T)

	return detail, ok
}

// StatusCode returns the HTTP status of an APIError in err's chain, or 0.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a 404 API error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 API error.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsConflict checks if the error is a 409 API error.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}
