package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"testing"
)

// =============================================================================
// ErrorType Tests
// =============================================================================

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    string
	}{
		{Unknown, "unknown"},
		{Network, "network"},
		{Timeout, "timeout"},
		{RateLimit, "rate_limit"},
		{Auth, "auth"},
		{NotFound, "not_found"},
		{ServerError, "server_error"},
		{ClientError, "client_error"},
		{Unexpected, "unexpected_status"},
		{Parse, "parse"},
		{Cancelled, "cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.errType.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// FetchError Tests
// =============================================================================

func TestFetchError_Error(t *testing.T) {
	err := NewFetchError(Network, "https://example.com", "crawl", "connection failed", nil)

	errStr := err.Error()
	for _, want := range []string{"network", "crawl", "https://example.com", "connection failed"} {
		if !strings.Contains(errStr, want) {
			t.Errorf("Error() = %s, should contain %q", errStr, want)
		}
	}
}

func TestFetchError_Error_WithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewFetchError(Network, "https://example.com", "crawl", "connection failed", cause)

	if !strings.Contains(err.Error(), "underlying error") {
		t.Errorf("Error() = %s, should contain cause", err.Error())
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestFetchError_Is(t *testing.T) {
	err1 := NewFetchError(Network, "https://example.com", "crawl", "failed", nil)
	err2 := NewFetchError(Network, "https://other.com", "probe", "failed", nil)
	err3 := NewFetchError(Timeout, "https://example.com", "crawl", "timeout", nil)

	if !errors.Is(err1, err2) {
		t.Error("Errors with same type should match")
	}
	if errors.Is(err1, err3) {
		t.Error("Errors with different types should not match")
	}
}

// =============================================================================
// Categorize Tests
// =============================================================================

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"context canceled", context.Canceled, Cancelled},
		{"wrapped cancel", fmt.Errorf("get: %w", context.Canceled), Cancelled},
		{"deadline", context.DeadlineExceeded, Timeout},
		{"net timeout", timeoutErr{}, Timeout},
		{"op error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, Network},
		{"dns error", &net.DNSError{Err: "no such host", Name: "nope.invalid"}, Network},
		{"econnrefused", fmt.Errorf("x: %w", syscall.ECONNREFUSED), Network},
		{"other", errors.New("weird"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.err, "https://example.com")
			if got.Type != tt.want {
				t.Errorf("Categorize() type = %v, want %v", got.Type, tt.want)
			}
			if got.URL != "https://example.com" {
				t.Errorf("Categorize() URL = %q", got.URL)
			}
		})
	}
}

func TestCategorize_Nil(t *testing.T) {
	if Categorize(nil, "u") != nil {
		t.Error("Categorize(nil) should return nil")
	}
}

func TestCategorize_PassesThroughFetchError(t *testing.T) {
	orig := NewParseError("u", "read_body", errors.New("bad"))
	wrapped := fmt.Errorf("outer: %w", orig)

	if got := Categorize(wrapped, "other"); got != orig {
		t.Error("Categorize should return the wrapped FetchError unchanged")
	}
}

func TestCategorizeHTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
		isNil  bool
	}{
		{200, Unknown, true},
		{302, Unknown, true},
		{401, Auth, false},
		{403, Auth, false},
		{404, NotFound, false},
		{418, ClientError, false},
		{429, RateLimit, false},
		{500, ServerError, false},
		{503, ServerError, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			got := CategorizeHTTPStatus(tt.status, "u")
			if tt.isNil {
				if got != nil {
					t.Errorf("CategorizeHTTPStatus(%d) = %v, want nil", tt.status, got)
				}
				return
			}
			if got == nil || got.Type != tt.want {
				t.Fatalf("CategorizeHTTPStatus(%d) = %v, want type %v", tt.status, got, tt.want)
			}
			if got.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", got.StatusCode, tt.status)
			}
		})
	}
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestReasonAndAccessors(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewStatusError(NotFound, "u", 404))

	if Reason(err) != "not_found" {
		t.Errorf("Reason() = %q", Reason(err))
	}
	if GetErrorType(err) != NotFound {
		t.Errorf("GetErrorType() = %v", GetErrorType(err))
	}
	if Reason(errors.New("plain")) != "unknown" {
		t.Error("plain errors should have the unknown reason")
	}
	if GetErrorType(errors.New("plain")) != Unknown {
		t.Error("plain errors should have the Unknown type")
	}
}
