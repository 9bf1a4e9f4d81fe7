package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases.
// Use errors.Is() to check against these.
var (
	ErrMissingInput      = errors.New("missing input")
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedClient = errors.New("unsupported client")
	ErrUpstreamError     = errors.New("upstream error")
	ErrRateLimited       = errors.New("rate limited")
)

// APIError represents a structured error for API responses.
// Implements error interface and supports unwrapping.
type APIError struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"` // HTTP status, not serialized
	Err        error  `json:"-"` // Wrapped error, not serialized
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewMissingInputError creates a 400 error for an absent or unusable
// required identifier (shop domain, variant id).
func NewMissingInputError(field, reason string) *APIError {
	return &APIError{
		Kind:       "MISSING_INPUT",
		Message:    fmt.Sprintf("invalid %s: %s", field, reason),
		StatusCode: 400,
		Err:        ErrMissingInput,
	}
}

// NewNotFoundError creates a 404 error for missing resources.
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: 404,
		Err:        ErrNotFound,
	}
}

// NewUnsupportedClientError creates a 400 error for embed scripts declaring
// a payload schema newer than this server speaks.
func NewUnsupportedClientError(version string) *APIError {
	return &APIError{
		Kind:       "UNSUPPORTED_CLIENT",
		Message:    fmt.Sprintf("widget schema %s is newer than this service supports", version),
		StatusCode: 400,
		Err:        ErrUnsupportedClient,
	}
}

// NewUpstreamError creates a 502 error for platform API failures.
func NewUpstreamError(service string, err error) *APIError {
	return &APIError{
		Kind:       "UPSTREAM_ERROR",
		Message:    fmt.Sprintf("%s request failed", service),
		StatusCode: 502,
		Err:        fmt.Errorf("%w: %v", ErrUpstreamError, err),
	}
}

// NewRateLimitError creates a 429 error for rate limiting.
func NewRateLimitError(scope string) *APIError {
	return &APIError{
		Kind:       "RATE_LIMITED",
		Message:    fmt.Sprintf("%s rate limit exceeded, please retry later", scope),
		StatusCode: 429,
		Err:        ErrRateLimited,
	}
}

// NewInternalError creates a 500 error for unexpected failures.
func NewInternalError(err error) *APIError {
	return &APIError{
		Kind:       "INTERNAL_ERROR",
		Message:    "an internal error occurred",
		StatusCode: 500,
		Err:        err,
	}
}
