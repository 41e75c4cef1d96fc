package analyses

import (
	"context"
	"fmt"
	"time"

	"fitscan-backend/internal/llm"
	"fitscan-backend/internal/shared/telemetry"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 2 * time.Second
)

// retryingClient wraps an llm.Client with a bounded retry loop. Transient
// failures (rate limits, 5xx, transport errors) retry with a fixed delay;
// request, authorization, and not-found failures surface immediately.
type retryingClient struct {
	inner       llm.Client
	maxAttempts int
	delay       time.Duration
}

func newRetryingClient(inner llm.Client, maxAttempts int, delay time.Duration) *retryingClient {
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	return &retryingClient{inner: inner, maxAttempts: maxAttempts, delay: delay}
}

func (r *retryingClient) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		completion, err := r.inner.Complete(ctx, req)
		if err == nil {
			return completion, nil
		}
		if !llm.IsRetryable(err) {
			return llm.Completion{}, err
		}
		lastErr = err
		if attempt == r.maxAttempts {
			break
		}
		telemetry.Warn("llm.retry", map[string]any{
			"attempt": attempt,
			"max":     r.maxAttempts,
			"error":   err.Error(),
		})
		select {
		case <-ctx.Done():
			return llm.Completion{}, ctx.Err()
		case <-time.After(r.delay):
		}
	}
	return llm.Completion{}, fmt.Errorf("%w after %d attempts: %v", llm.ErrRetriesExhausted, r.maxAttempts, lastErr)
}

var _ llm.Client = (*retryingClient)(nil)
