package cloudagents

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/s0up4200/cloudagents/auth"
)

// Common errors
var (
	// ErrConfiguration indicates missing credentials, an invalid environment
	// URL, or a request made before a strategy was bound.
	ErrConfiguration = auth.ErrConfiguration
	// ErrInvalidArgument indicates a required path identifier was empty
	ErrInvalidArgument = errors.New("invalid argument")
)

// TransportError represents a network-level failure: DNS, connection,
// timeout or an unreadable response body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("cloud agents request %s %s failed: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying transport error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx response from the Cloud Agents API
type APIError struct {
	StatusCode int
	Message    string
	// Body is the decoded JSON error payload, nil when the server sent none
	Body any
	// Raw is the undecoded response body
	Raw []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("cloud agents API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func newAPIError(statusCode int, raw []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Raw:        raw,
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		var body any
		if err := json.Unmarshal([]byte(trimmed), &body); err == nil {
			apiErr.Body = body
		}
	}

	apiErr.Message = errorMessage(apiErr.Body)
	if apiErr.Message == "" && apiErr.Body == nil {
		apiErr.Message = trimmed
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}

	return apiErr
}

// errorMessage extracts a human readable message from common error shapes
func errorMessage(body any) string {
	obj, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"message", "Message", "error", "error_description"} {
		if msg, ok := obj[key].(string); ok && msg != "" {
			return msg
		}
	}
	return ""
}

// AsAPIError returns the APIError wrapped in err, if any
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an API 404
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.IsNotFound()
}

// IsTransportError reports whether err is a network-level failure
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsConfigurationError reports whether err is, or wraps, ErrConfiguration
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
