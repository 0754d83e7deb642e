package sqlite_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FurryCoders/faapi"
	"github.com/FurryCoders/faapi/bloom"
	"github.com/FurryCoders/faapi/sqlite"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db
}

func TestCacheService_PutGet(t *testing.T) {
	t.Parallel()

	t.Run("RoundTrip", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCacheService(db)

		err := s.Put(context.Background(), &faapi.CacheEntry{
			Kind:      "submission",
			Key:       "12345",
			SessionID: "anonymous",
			Payload:   []byte(`{"id":12345}`),
		})
		require.NoError(t, err)

		entry, err := s.Get(context.Background(), "submission", "12345", "anonymous")
		require.NoError(t, err)
		assert.Equal(t, "submission", entry.Kind)
		assert.Equal(t, "12345", entry.Key)
		assert.Equal(t, []byte(`{"id":12345}`), entry.Payload)
		assert.False(t, entry.FetchedAt.IsZero())
	})

	t.Run("MissReturnsNotFound", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCacheService(db)

		_, err := s.Get(context.Background(), "submission", "99999", "anonymous")
		require.Error(t, err)
		assert.Equal(t, faapi.ENOTFOUND, faapi.ErrorCode(err))
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCacheService(db)

		require.NoError(t, s.Put(context.Background(), &faapi.CacheEntry{
			Kind: "user", Key: "fender", SessionID: "abc", Payload: []byte("logged-in"),
		}))

		_, err := s.Get(context.Background(), "user", "fender", "anonymous")
		require.Error(t, err)
		assert.Equal(t, faapi.ENOTFOUND, faapi.ErrorCode(err))
	})

	t.Run("PutReplacesExisting", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCacheService(db)

		require.NoError(t, s.Put(context.Background(), &faapi.CacheEntry{
			Kind: "journal", Key: "1", SessionID: "anonymous", Payload: []byte("old"),
		}))
		require.NoError(t, s.Put(context.Background(), &faapi.CacheEntry{
			Kind: "journal", Key: "1", SessionID: "anonymous", Payload: []byte("new"),
		}))

		entry, err := s.Get(context.Background(), "journal", "1", "anonymous")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), entry.Payload)
	})

	t.Run("RejectsEmptyKind", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewCacheService(db)

		err := s.Put(context.Background(), &faapi.CacheEntry{Key: "1"})
		require.Error(t, err)
		assert.Equal(t, faapi.EINVALID, faapi.ErrorCode(err))
	})
}

func TestCacheService_TTL(t *testing.T) {
	t.Parallel()

	t.Run("ExpiredEntryIsAMiss", func(t *testing.T) {
		t.Parallel()

		now := time.Now().UTC()
		clock := now
		db := mustOpenDB(t)
		s := sqlite.NewCacheService(db,
			sqlite.WithTTL(time.Minute),
			sqlite.WithNow(func() time.Time { return clock }),
		)

		require.NoError(t, s.Put(context.Background(), &faapi.CacheEntry{
			Kind: "submission", Key: "1", SessionID: "anonymous", Payload: []byte("x"),
		}))

		// Fresh within the TTL
		_, err := s.Get(context.Background(), "submission", "1", "anonymous")
		require.NoError(t, err)

		// Expired once the clock advances past the TTL
		clock = now.Add(2 * time.Minute)
		_, err = s.Get(context.Background(), "submission", "1", "anonymous")
		require.Error(t, err)
		assert.Equal(t, faapi.ENOTFOUND, faapi.ErrorCode(err))
	})

	t.Run("PruneDeletesExpired", func(t *testing.T) {
		t.Parallel()

		now := time.Now().UTC()
		clock := now
		db := mustOpenDB(t)
		s := sqlite.NewCacheService(db,
			sqlite.WithTTL(time.Minute),
			sqlite.WithNow(func() time.Time { return clock }),
		)

		require.NoError(t, s.Put(context.Background(), &faapi.CacheEntry{
			Kind: "submission", Key: "1", SessionID: "anonymous", Payload: []byte("x"),
		}))
		clock = now.Add(2 * time.Minute)
		require.NoError(t, s.Put(context.Background(), &faapi.CacheEntry{
			Kind: "submission", Key: "2", SessionID: "anonymous", Payload: []byte("y"),
		}))

		pruned, err := s.Prune(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), pruned)

		_, err = s.Get(context.Background(), "submission", "2", "anonymous")
		require.NoError(t, err)
	})

	t.Run("PruneHandlesNonUTCTimestamps", func(t *testing.T) {
		t.Parallel()

		// A zone far east of UTC makes the local wall-clock text read
		// later than the UTC cutoff; only UTC-normalized storage prunes
		// it correctly.
		east := time.FixedZone("UTC+13", 13*3600)
		now := time.Now().UTC()
		db := mustOpenDB(t)
		s := sqlite.NewCacheService(db,
			sqlite.WithTTL(time.Minute),
			sqlite.WithNow(func() time.Time { return now }),
		)

		require.NoError(t, s.Put(context.Background(), &faapi.CacheEntry{
			Kind: "submission", Key: "1", SessionID: "anonymous",
			Payload:   []byte("x"),
			FetchedAt: now.Add(-2 * time.Hour).In(east),
		}))

		pruned, err := s.Prune(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), pruned)
	})
}

func TestCacheService_PrunePeriodically(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	now := time.Now().UTC()
	clock := now
	setClock := func(v time.Time) {
		mu.Lock()
		clock = v
		mu.Unlock()
	}

	db := mustOpenDB(t)
	s := sqlite.NewCacheService(db,
		sqlite.WithTTL(time.Minute),
		sqlite.WithNow(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return clock
		}),
	)

	require.NoError(t, s.Put(context.Background(), &faapi.CacheEntry{
		Kind: "submission", Key: "1", SessionID: "anonymous", Payload: []byte("x"),
	}))
	setClock(now.Add(2 * time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.PrunePeriodically(ctx, 5*time.Millisecond, slog.New(slog.DiscardHandler))
	}()

	// Once the row is deleted, rewinding the clock cannot make it fresh
	// again, which distinguishes pruning from TTL filtering in Get.
	require.Eventually(t, func() bool {
		setClock(now)
		defer setClock(now.Add(2 * time.Minute))
		_, err := s.Get(context.Background(), "submission", "1", "anonymous")
		return faapi.ErrorCode(err) == faapi.ENOTFOUND
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PrunePeriodically did not stop after cancellation")
	}
}

func TestCacheService_Filter(t *testing.T) {
	t.Parallel()

	t.Run("ColdKeySkipsDatabase", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		f := bloom.NewFilter(1000, 0.01)
		s := sqlite.NewCacheService(db, sqlite.WithFilter(f))

		_, err := s.Get(context.Background(), "submission", "1", "anonymous")
		require.Error(t, err)
		assert.Equal(t, faapi.ENOTFOUND, faapi.ErrorCode(err))
	})

	t.Run("PutRecordsKey", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		f := bloom.NewFilter(1000, 0.01)
		s := sqlite.NewCacheService(db, sqlite.WithFilter(f))

		require.NoError(t, s.Put(context.Background(), &faapi.CacheEntry{
			Kind: "user", Key: "fender", SessionID: "anonymous", Payload: []byte("x"),
		}))
		assert.True(t, f.Test("user/fender/anonymous"))

		entry, err := s.Get(context.Background(), "user", "fender", "anonymous")
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), entry.Payload)
	})
}
