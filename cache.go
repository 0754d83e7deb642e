package faapi

import (
	"context"
	"time"
)

// CacheEntry is a serialized response stored for reuse.
type CacheEntry struct {
	Kind      string    // resource kind, e.g. "submission"
	Key       string    // resource key, e.g. the submission ID
	SessionID string    // Session.ID() of the session the entry was fetched with
	Payload   []byte    // serialized response body
	FetchedAt time.Time // when the entry was stored
}

// CacheService stores and retrieves serialized responses. Entries older
// than the service's TTL are treated as absent.
type CacheService interface {
	// Get retrieves a fresh cache entry.
	// Returns ENOTFOUND if no fresh entry exists; a miss is a normal
	// outcome for callers to branch on.
	Get(ctx context.Context, kind, key, sessionID string) (*CacheEntry, error)

	// Put stores a cache entry, replacing any previous entry for the same
	// kind, key, and session.
	Put(ctx context.Context, entry *CacheEntry) error
}
