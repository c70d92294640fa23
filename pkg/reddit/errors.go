package reddit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a single entry of a Reddit "json.errors" payload. The remote API
// encodes each entry as a [code, message, field] triple.
type APIError struct {
	Code    string `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Field   string `json:"field"   yaml:"field"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Code, e.Message, e.Field)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UnmarshalJSON decodes the [code, message, field] triple.
func (e *APIError) UnmarshalJSON(data []byte) error {
	var triple []interface{}

	err := json.Unmarshal(data, &triple)
	if err != nil {
		// Some endpoints use an object instead of a triple.
		type plain APIError

		var obj plain

		objErr := json.Unmarshal(data, &obj)
		if objErr != nil {
			return fmt.Errorf("failed to unmarshal API error: %w", err)
		}

		*e = APIError(obj)

		return nil
	}

	parts := make([]string, 3)
	for i := 0; i < len(triple) && i < 3; i++ {
		if s, ok := triple[i].(string); ok {
			parts[i] = s
		}
	}

	e.Code, e.Message, e.Field = parts[0], parts[1], parts[2]

	return nil
}

// JSONErrors is the "json" member some Reddit endpoints use to report failures.
type JSONErrors struct {
	Errors []APIError `json:"errors" yaml:"errors"`
}

// Err returns the first error or nil.
func (j *JSONErrors) Err() error {
	if j == nil || len(j.Errors) == 0 {
		return nil
	}

	if len(j.Errors) == 1 {
		return &j.Errors[0]
	}

	return &ResponseError{JSON: j}
}

// ResponseError represents a failed response from the API.
type ResponseError struct {
	StatusCode  int         `json:"-"`
	Message     string      `json:"message,omitempty"`
	Code        int         `json:"error,omitempty"`
	Reason      string      `json:"reason,omitempty"`
	Explanation string      `json:"explanation,omitempty"`
	JSON        *JSONErrors `json:"json,omitempty"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	var parts []string

	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status %d", e.StatusCode))
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Reason != "" {
		parts = append(parts, "reason: "+e.Reason)
	}

	if e.Explanation != "" {
		parts = append(parts, e.Explanation)
	}

	if e.JSON != nil {
		for i := range e.JSON.Errors {
			parts = append(parts, e.JSON.Errors[i].Error())
		}
	}

	if len(parts) == 0 {
		return "unknown error"
	}

	return strings.Join(parts, ": ")
}

// FirstError returns the first json.errors entry or nil.
func (e *ResponseError) FirstError() *APIError {
	if e.JSON != nil && len(e.JSON.Errors) > 0 {
		return &e.JSON.Errors[0]
	}

	return nil
}

// Common static errors that can be wrapped with context.
var (
	ErrEmptyResponse          = errors.New("empty response envelope")
	ErrMissingListingData     = errors.New("listing container has no data")
	ErrConfigRequired         = errors.New("config is required")
	ErrBaseURLRequired        = errors.New("base URL is required")
	ErrNoTokenManager         = errors.New("no token manager configured")
	ErrStaticTokenCannotRenew = errors.New("static token cannot be refreshed")
	ErrNATSConfigRequired     = errors.New("NATS configuration required for NATS cache")
	ErrRedisConfigRequired    = errors.New("redis configuration required for redis cache")
	ErrUnsupportedCacheType   = errors.New("unsupported cache type")
	ErrCacheDisabled          = errors.New("cache disabled")
	ErrKeyNotFound            = errors.New("key not found")
	ErrEntryExpired           = errors.New("entry expired")
	ErrScopeNotFound          = errors.New("scope not found")
	ErrTaskPending            = errors.New("task still running")
)

// ParseResponseError parses an error response from JSON.
func ParseResponseError(statusCode int, data []byte) (*ResponseError, error) {
	var errResp ResponseError

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response error: %w", err)
	}

	errResp.StatusCode = statusCode

	return &errResp, nil
}

func statusOf(err error) int {
	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		if errResp.StatusCode != 0 {
			return errResp.StatusCode
		}

		return errResp.Code
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	if statusOf(err) == http.StatusNotFound {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == "USER_DOESNT_EXIST" || apiErr.Code == "NOT_FOUND"
	}

	return false
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsRateLimited checks if the error was caused by request throttling.
func IsRateLimited(err error) bool {
	if statusOf(err) == http.StatusTooManyRequests {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == "RATELIMIT"
	}

	return false
}
