package scrape

import (
	"context"
	"time"

	"github.com/FurryCoders/faapi"
)

// FetchFunc is the signature for a single fetch attempt.
type FetchFunc func(ctx context.Context) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry attempts a fetch with exponential backoff. Only transient
// upstream failures (EUNAVAILABLE) are retried; every other error is
// returned immediately so missing pages and auth failures don't burn
// attempts against the site.
func FetchWithRetry(ctx context.Context, fetch FetchFunc, logger LogFunc) (string, error) {
	return FetchWithRetryDelays(ctx, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable
// delays. This is useful for testing without waiting for real delays.
func FetchWithRetryDelays(ctx context.Context, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx)
		if err == nil {
			return html, nil
		}
		if faapi.ErrorCode(err) != faapi.EUNAVAILABLE {
			return "", err
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry (attempt %d): %v", attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
