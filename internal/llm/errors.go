package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotConfigured is returned when no provider credentials exist.
	ErrNotConfigured = errors.New("no LLM credentials configured")

	// ErrUnauthorized is returned when the provider rejects the API key.
	ErrUnauthorized = errors.New("LLM provider rejected the API key")
)

// Failure reasons attached to fallback log lines.
const (
	ReasonNotConfigured   = "not_configured"
	ReasonUnauthorized    = "unauthorized"
	ReasonRateLimited     = "rate_limited"
	ReasonInvalidResponse = "invalid_response"
	ReasonTruncated       = "truncated"
	ReasonUnavailable     = "unavailable"
	ReasonTimeout         = "timeout"
	ReasonCanceled        = "canceled"
	ReasonUnknown         = "error"
)

// ErrRateLimit is returned on HTTP 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the reply was empty, not JSON, or did not match
// the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable means the provider could not be reached or failed
// server-side.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means a structured reply was cut off by MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("LLM response truncated after %d bytes: max tokens exceeded", len(e.Content))
}

// FailureReason classifies err into one of the Reason constants. It
// returns "" for a nil error.
func FailureReason(err error) string {
	var (
		rateLimit *ErrRateLimit
		truncated *ErrMaxTokensExceeded
		invalid   *ErrInvalidResponse
		down      *ErrProviderUnavailable
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return ReasonNotConfigured
	case errors.Is(err, ErrUnauthorized):
		return ReasonUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.As(err, &rateLimit):
		return ReasonRateLimited
	case errors.As(err, &truncated):
		return ReasonTruncated
	case errors.As(err, &invalid):
		return ReasonInvalidResponse
	case errors.As(err, &down):
		return ReasonUnavailable
	default:
		return ReasonUnknown
	}
}

// classifyStatus maps the HTTP status of a failed provider call to one of
// the typed errors above.
func classifyStatus(status int, retryAfter time.Duration, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
