package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FurryCoders/faapi"
	"github.com/FurryCoders/faapi/scrape"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("SucceedsFirstAttempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := scrape.FetchWithRetryDelays(context.Background(), func(ctx context.Context) (string, error) {
			calls++
			return "<html></html>", nil
		}, nil, noDelays)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUnavailable", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := scrape.FetchWithRetryDelays(context.Background(), func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", faapi.Errorf(faapi.EUNAVAILABLE, "upstream returned 503")
			}
			return "ok", nil
		}, nil, noDelays)
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := scrape.FetchWithRetryDelays(context.Background(), func(ctx context.Context) (string, error) {
			calls++
			return "", faapi.Errorf(faapi.EUNAVAILABLE, "upstream returned 503")
		}, nil, noDelays)
		require.Error(t, err)
		assert.Equal(t, faapi.EUNAVAILABLE, faapi.ErrorCode(err))
		assert.Equal(t, 4, calls) // 1 initial + 3 retries
	})

	t.Run("DoesNotRetryNotFound", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := scrape.FetchWithRetryDelays(context.Background(), func(ctx context.Context) (string, error) {
			calls++
			return "", faapi.Errorf(faapi.ENOTFOUND, "page not found")
		}, nil, noDelays)
		require.Error(t, err)
		assert.Equal(t, faapi.ENOTFOUND, faapi.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("StopsOnCanceledContext", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := scrape.FetchWithRetryDelays(ctx, func(ctx context.Context) (string, error) {
			calls++
			cancel()
			return "", faapi.Errorf(faapi.EUNAVAILABLE, "upstream returned 503")
		}, nil, []time.Duration{time.Hour})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
