package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/FurryCoders/faapi"
	"github.com/FurryCoders/faapi/bloom"
)

// Compile-time interface verification.
var _ faapi.CacheService = (*CacheService)(nil)

// DefaultCacheTTL is how long a stored response stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// CacheService implements faapi.CacheService using SQLite. Keys are hashed
// so arbitrary resource keys stay a fixed width in the table. An optional
// Bloom filter records every key ever written; lookups test it first so
// keys that were never stored skip the database.
type CacheService struct {
	db     *DB
	ttl    time.Duration
	filter *bloom.Filter
	now    func() time.Time
}

// CacheOption configures a CacheService.
type CacheOption func(*CacheService)

// WithTTL sets the freshness window for stored entries.
func WithTTL(ttl time.Duration) CacheOption {
	return func(s *CacheService) { s.ttl = ttl }
}

// WithFilter sets the negative-lookup filter.
func WithFilter(f *bloom.Filter) CacheOption {
	return func(s *CacheService) { s.filter = f }
}

// WithNow sets the clock, for tests.
func WithNow(now func() time.Time) CacheOption {
	return func(s *CacheService) { s.now = now }
}

// NewCacheService creates a new CacheService.
func NewCacheService(db *DB, opts ...CacheOption) *CacheService {
	s := &CacheService{
		db:  db,
		ttl: DefaultCacheTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// hashKey computes xxHash of a resource key and returns a hex string.
func hashKey(key string) string {
	h := xxhash.Sum64String(key)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// filterKey is the value recorded in the Bloom filter for an entry.
func filterKey(kind, key, sessionID string) string {
	return kind + "/" + key + "/" + sessionID
}

// Get retrieves a fresh cache entry. Returns ENOTFOUND if no entry exists
// or the stored entry has expired.
func (s *CacheService) Get(ctx context.Context, kind, key, sessionID string) (*faapi.CacheEntry, error) {
	if s.filter != nil && !s.filter.Test(filterKey(kind, key, sessionID)) {
		return nil, faapi.Errorf(faapi.ENOTFOUND, "cache entry not found")
	}

	var payload []byte
	var fetchedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at
		FROM cache
		WHERE kind = ? AND key_hash = ? AND session_id = ?
	`, kind, hashKey(key), sessionID).Scan(&payload, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, faapi.Errorf(faapi.ENOTFOUND, "cache entry not found")
	}
	if err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}
	if s.now().Sub(t) > s.ttl {
		return nil, faapi.Errorf(faapi.ENOTFOUND, "cache entry expired")
	}

	return &faapi.CacheEntry{
		Kind:      kind,
		Key:       key,
		SessionID: sessionID,
		Payload:   payload,
		FetchedAt: t,
	}, nil
}

// Put stores a cache entry, replacing any previous entry for the same kind,
// key, and session.
func (s *CacheService) Put(ctx context.Context, entry *faapi.CacheEntry) error {
	if entry.Kind == "" || entry.Key == "" {
		return faapi.Errorf(faapi.EINVALID, "cache entry kind and key required")
	}

	fetchedAt := entry.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = s.now()
	}
	// Stored as UTC so Prune's lexicographic cutoff comparison is sound.
	fetchedAt = fetchedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache (kind, key_hash, session_id, payload, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (kind, key_hash, session_id) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, entry.Kind, hashKey(entry.Key), entry.SessionID, entry.Payload, fetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	if s.filter != nil {
		s.filter.Add(filterKey(entry.Kind, entry.Key, entry.SessionID))
	}
	return nil
}

// Prune deletes entries older than the TTL. Callers run it periodically to
// keep the database from growing without bound.
func (s *CacheService) Prune(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.ttl).UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PrunePeriodically prunes expired entries every interval until the context
// is canceled. Meant to run in its own goroutine alongside a server.
func (s *CacheService) PrunePeriodically(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Prune(ctx)
			if err != nil {
				logger.Warn("cache prune failed", "err", err)
				continue
			}
			if n > 0 {
				logger.Info("cache pruned", "entries", n)
			}
		}
	}
}
