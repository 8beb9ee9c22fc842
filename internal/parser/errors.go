package parser

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TransportKind classifies a failed backend call.
type TransportKind string

const (
	TransportRateLimited  TransportKind = "rate_limited"
	TransportOverloaded   TransportKind = "overloaded"
	TransportServerError  TransportKind = "server_error"
	TransportNetwork      TransportKind = "network"
	TransportBadRequest   TransportKind = "bad_request"
	TransportUnauthorized TransportKind = "unauthorized"
	TransportUnknown      TransportKind = "unknown"
)

// DefaultRetryAfter is used when a rate-limited response carries no usable Retry-After.
const DefaultRetryAfter = 60 * time.Second

// TransportError reports a backend call that failed before yielding model text.
type TransportError struct {
	Provider   string
	StatusCode int
	Kind       TransportKind
	RetryAfter time.Duration
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Kind == TransportRateLimited:
		return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s %s (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Kind, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the same request may succeed later.
func (e *TransportError) Temporary() bool {
	switch e.Kind {
	case TransportRateLimited, TransportOverloaded, TransportServerError, TransportNetwork:
		return true
	}
	return false
}

// UserMessage is a short explanation suitable for end users.
func (e *TransportError) UserMessage() string {
	switch e.Kind {
	case TransportRateLimited:
		return "The menu service is receiving too many requests. Please wait a moment and try again."
	case TransportOverloaded:
		return "The menu service is temporarily overloaded. Please try again shortly."
	case TransportServerError:
		return "The menu service had an internal error. Please try again."
	case TransportNetwork:
		return "Could not reach the menu service. Check your connection and try again."
	case TransportBadRequest:
		return "The image could not be processed. Try a clearer or smaller photo."
	case TransportUnauthorized:
		return "The server is not authorized to use the menu service."
	default:
		return "The menu service returned an unexpected error."
	}
}

// ClassifyStatus maps an HTTP status code to a TransportKind.
func ClassifyStatus(status int) TransportKind {
	switch {
	case status == http.StatusTooManyRequests:
		return TransportRateLimited
	case status == http.StatusServiceUnavailable || status == 529:
		return TransportOverloaded
	case status >= 500:
		return TransportServerError
	case status == http.StatusBadRequest || status == http.StatusRequestEntityTooLarge || status == http.StatusUnprocessableEntity:
		return TransportBadRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return TransportUnauthorized
	default:
		return TransportUnknown
	}
}

// NewTransportError classifies a non-success HTTP response. retryAfter is the
// raw Retry-After header value and only matters for rate limits.
func NewTransportError(provider string, status int, retryAfter string, err error) *TransportError {
	kind := ClassifyStatus(status)
	if kind == TransportRateLimited {
		rl := NewRateLimitError(provider, err, ParseRetryAfterHeader(retryAfter))
		rl.StatusCode = status
		return rl
	}
	return &TransportError{Provider: provider, StatusCode: status, Kind: kind, Err: err}
}

// NewNetworkError wraps a failure to obtain any response.
func NewNetworkError(provider string, err error) *TransportError {
	return &TransportError{Provider: provider, Kind: TransportNetwork, Err: err}
}

// NewRateLimitError creates a rate-limit TransportError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *TransportError {
	retryAfter := time.Duration(retryAfterSecs) * time.Second
	if retryAfterSecs <= 0 {
		retryAfter = DefaultRetryAfter
	}
	return &TransportError{
		Provider:   provider,
		StatusCode: http.StatusTooManyRequests,
		Kind:       TransportRateLimited,
		RetryAfter: retryAfter,
		Err:        err,
	}
}

// IsRateLimited reports whether err carries a rate-limit TransportError.
func IsRateLimited(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) && tErr.Kind == TransportRateLimited {
		return tErr, true
	}
	return nil, false
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}
