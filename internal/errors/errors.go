// Package errors names the reason a fetch made during an audit was skipped.
//
// Nothing here is retried.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrorType is the reason a fetch failed or its response was unusable.
type ErrorType int

const (
	Unknown ErrorType = iota
	Network
	Timeout
	RateLimit   // 429
	Auth        // 401, 403
	NotFound    // 404
	ServerError // 5xx
	ClientError // other 4xx
	Unexpected  // a status below 400 the caller cannot use, e.g. 204 or 3xx
	Parse       // request construction, body decoding or markup
	Cancelled
)

var typeNames = [...]string{
	Unknown:     "unknown",
	Network:     "network",
	Timeout:     "timeout",
	RateLimit:   "rate_limit",
	Auth:        "auth",
	NotFound:    "not_found",
	ServerError: "server_error",
	ClientError: "client_error",
	Unexpected:  "unexpected_status",
	Parse:       "parse",
	Cancelled:   "cancelled",
}

// String returns the name used as a skip reason in metrics and logs.
func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[Unknown]
	}
	return typeNames[t]
}

// FetchError is a categorized failure for one URL.
type FetchError struct {
	Type       ErrorType
	URL        string
	Operation  string
	Message    string
	Cause      error
	StatusCode int
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s %s: %s [%s]", e.Operation, e.URL, e.Message, e.Type)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is matches any *FetchError of the same type, so errors.Is can test a
// chain against a sentinel like &FetchError{Type: NotFound}.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	return ok && e.Type == t.Type
}

// NewFetchError creates a FetchError.
func NewFetchError(errType ErrorType, url, operation, message string, cause error) *FetchError {
	return &FetchError{
		Type:      errType,
		URL:       url,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// NewParseError creates a Parse error.
func NewParseError(url, operation string, cause error) *FetchError {
	return NewFetchError(Parse, url, operation, "parsing failed", cause)
}

// NewStatusError creates an error for a response whose status the caller
// cannot use.
func NewStatusError(errType ErrorType, url string, statusCode int) *FetchError {
	err := NewFetchError(errType, url, "request", fmt.Sprintf("server returned %d", statusCode), nil)
	err.StatusCode = statusCode
	return err
}

// Categorize wraps err in a FetchError for url. A FetchError already in
// err's chain is returned unchanged.
func Categorize(err error, url string) *FetchError {
	if err == nil {
		return nil
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}

	switch {
	case errors.Is(err, context.Canceled):
		return NewFetchError(Cancelled, url, "request", "operation cancelled", err)
	case isTimeout(err):
		return NewFetchError(Timeout, url, "request", "request timed out", err)
	case isNetwork(err):
		return NewFetchError(Network, url, "request", "network failure", err)
	default:
		return NewFetchError(Unknown, url, "request", err.Error(), err)
	}
}

// CategorizeHTTPStatus returns an error for 4xx and 5xx codes, nil otherwise.
func CategorizeHTTPStatus(statusCode int, url string) *FetchError {
	var t ErrorType
	switch {
	case statusCode == 401 || statusCode == 403:
		t = Auth
	case statusCode == 404:
		t = NotFound
	case statusCode == 429:
		t = RateLimit
	case statusCode >= 500:
		t = ServerError
	case statusCode >= 400:
		t = ClientError
	default:
		return nil
	}
	return NewStatusError(t, url, statusCode)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

var networkErrnos = []syscall.Errno{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.EHOSTUNREACH,
	syscall.ENETUNREACH,
}

var networkMessages = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"dial tcp",
}

func isNetwork(err error) bool {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return true
	}
	for _, errno := range networkErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	s := err.Error()
	for _, m := range networkMessages {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Reason returns the skip reason recorded for err.
func Reason(err error) string {
	return GetErrorType(err).String()
}

// GetErrorType returns the type carried by err, or Unknown.
func GetErrorType(err error) ErrorType {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Type
	}
	return Unknown
}
