package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures into a closed taxonomy.
type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid_request"
	KindAuthorization  ErrorKind = "authorization"
	KindNotFound       ErrorKind = "not_found"
	KindRateLimited    ErrorKind = "rate_limited"
	KindUnavailable    ErrorKind = "unavailable"
	KindUnknown        ErrorKind = "unknown"
)

// ErrRetriesExhausted marks a request that failed after the full retry budget.
var ErrRetriesExhausted = errors.New("llm retries exhausted")

// ProviderError is a classified provider failure.
type ProviderError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("llm provider %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("llm provider %s: %s", e.Kind, e.Message)
}

// Retryable reports whether the failure class is worth retrying.
func (e *ProviderError) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindUnavailable, KindUnknown:
		return true
	default:
		return false
	}
}

// ClassifyStatus maps an HTTP status code to an error kind. New providers
// reuse this table so the retry loop stays provider-agnostic.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == 400:
		return KindInvalidRequest
	case status == 401 || status == 403:
		return KindAuthorization
	case status == 404:
		return KindNotFound
	case status == 429:
		return KindRateLimited
	case status >= 500:
		return KindUnavailable
	default:
		return KindUnknown
	}
}

// IsRetryable reports whether err may be retried. Unclassified transport
// errors (network resets, timeouts) count as retryable up to the budget.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotConfigured) {
		return false
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Retryable()
	}
	return true
}
