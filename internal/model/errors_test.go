package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "without wrapped error",
			err: &APIError{
				Kind:    "TEST_ERROR",
				Message: "something went wrong",
			},
			want: "TEST_ERROR: something went wrong",
		},
		{
			name: "with wrapped error",
			err: &APIError{
				Kind:    "TEST_ERROR",
				Message: "something went wrong",
				Err:     errors.New("underlying cause"),
			},
			want: "TEST_ERROR: something went wrong (underlying cause)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &APIError{
		Kind:    "TEST",
		Message: "test",
		Err:     underlying,
	}

	unwrapped := err.Unwrap()
	if unwrapped != underlying {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, underlying)
	}

	// Test nil case
	errNoWrap := &APIError{Kind: "TEST", Message: "test"}
	if errNoWrap.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no wrapped error")
	}
}

func TestNewMissingInputError(t *testing.T) {
	err := NewMissingInputError("variant", "must be a numeric id")

	if err.Kind != "MISSING_INPUT" {
		t.Errorf("Kind = %q, want %q", err.Kind, "MISSING_INPUT")
	}
	if err.Message != "invalid variant: must be a numeric id" {
		t.Errorf("Message = %q, want %q", err.Message, "invalid variant: must be a numeric id")
	}
	if err.StatusCode != 400 {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, 400)
	}
	if !errors.Is(err, ErrMissingInput) {
		t.Error("error should wrap ErrMissingInput sentinel")
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("shop")

	if err.Kind != "NOT_FOUND" {
		t.Errorf("Kind = %q, want %q", err.Kind, "NOT_FOUND")
	}
	if err.Message != "shop not found" {
		t.Errorf("Message = %q, want %q", err.Message, "shop not found")
	}
	if err.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, 404)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("error should wrap ErrNotFound sentinel")
	}
}

func TestNewUnsupportedClientError(t *testing.T) {
	err := NewUnsupportedClientError("9.0.0")

	if err.Kind != "UNSUPPORTED_CLIENT" {
		t.Errorf("Kind = %q, want %q", err.Kind, "UNSUPPORTED_CLIENT")
	}
	if err.StatusCode != 400 {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, 400)
	}
	if !errors.Is(err, ErrUnsupportedClient) {
		t.Error("error should wrap ErrUnsupportedClient sentinel")
	}
}

func TestNewUpstreamError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := NewUpstreamError("Shopify", underlying)

	if err.Kind != "UPSTREAM_ERROR" {
		t.Errorf("Kind = %q, want %q", err.Kind, "UPSTREAM_ERROR")
	}
	if err.Message != "Shopify request failed" {
		t.Errorf("Message = %q, want %q", err.Message, "Shopify request failed")
	}
	if err.StatusCode != 502 {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, 502)
	}
	if !errors.Is(err, ErrUpstreamError) {
		t.Error("error should wrap ErrUpstreamError sentinel")
	}
	// Verify the underlying error is preserved in the chain
	if err.Err == nil {
		t.Error("wrapped error should not be nil")
	}
}

func TestNewInternalError(t *testing.T) {
	underlying := errors.New("null pointer dereference")
	err := NewInternalError(underlying)

	if err.Kind != "INTERNAL_ERROR" {
		t.Errorf("Kind = %q, want %q", err.Kind, "INTERNAL_ERROR")
	}
	if err.Message != "an internal error occurred" {
		t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
	}
	if err.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, 500)
	}
	if err.Err != underlying {
		t.Error("wrapped error should be preserved")
	}
}

func TestNewRateLimitError(t *testing.T) {
	err := NewRateLimitError("availability")

	if err.Kind != "RATE_LIMITED" {
		t.Errorf("Kind = %q, want %q", err.Kind, "RATE_LIMITED")
	}
	if err.Message != "availability rate limit exceeded, please retry later" {
		t.Errorf("Message = %q, want %q", err.Message, "availability rate limit exceeded, please retry later")
	}
	if err.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, 429)
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Error("error should wrap ErrRateLimited sentinel")
	}
}

// TestErrorsIs verifies that errors.Is() works correctly with all sentinel errors.
// This is critical for handler code that uses errors.Is() to determine response codes.
func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		sentinel error
	}{
		{"MissingInput", NewMissingInputError("x", "y"), ErrMissingInput},
		{"NotFound", NewNotFoundError("x"), ErrNotFound},
		{"UnsupportedClient", NewUnsupportedClientError("9.9.9"), ErrUnsupportedClient},
		{"Upstream", NewUpstreamError("x", nil), ErrUpstreamError},
		{"RateLimit", NewRateLimitError("x"), ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%T, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestAPIErrorImplementsError verifies the error interface is properly implemented.
func TestAPIErrorImplementsError(t *testing.T) {
	var err error = &APIError{Kind: "TEST", Message: "test"}
	_ = err.Error() // Should compile and not panic

	// Verify it works with fmt.Errorf wrapping
	wrapped := fmt.Errorf("outer: %w", err)
	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Error("errors.As should find *APIError in wrapped error")
	}
}
