package generation

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
)

const (
	maxAttempts    = 2
	retryBaseDelay = 500 * time.Millisecond
)

// isRetryable reports whether an API error is worth a second attempt.
// Rate limits and server-side failures are transient; everything else
// (bad request, auth, quota exhaustion semantics aside) is not.
func isRetryable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}

// withRetry runs fn up to maxAttempts times with exponential backoff,
// stopping early on non-retryable errors or context cancellation.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	delay := retryBaseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil || !isRetryable(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
