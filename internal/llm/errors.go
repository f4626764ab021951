package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrMissingAPIKey is returned when a vendor client is built without a key.
var ErrMissingAPIKey = errors.New("API key is required")

// RateLimitError is a 429 from the vendor.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// UnavailableError covers vendor outages, transport failures and any
// other call that did not produce a reply.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "llm provider unavailable"
	}
	return "llm provider unavailable: " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// InvalidResponseError means the reply was not JSON matching the schema.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return "invalid llm response: " + e.Err.Error()
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// TruncatedError means generation stopped at the token limit.
type TruncatedError struct {
	Content json.RawMessage
	Limit   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("llm response truncated at %d tokens", e.Limit)
}

// classify turns a failed vendor call into one of the errors above.
func classify(status int, header http.Header, err error) error {
	if status == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfter: retryAfter(header), Err: err}
	}
	return &UnavailableError{Err: err}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

type retryPolicy int

const (
	retryNever retryPolicy = iota
	retryOnce
	retryAlways
)

// policyFor decides whether a failed request is worth sending again.
func policyFor(err error) retryPolicy {
	var (
		truncated *TruncatedError
		invalid   *InvalidResponseError
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.Is(err, ErrMissingAPIKey), errors.As(err, &truncated):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	default:
		return retryAlways
	}
}
