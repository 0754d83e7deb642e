package mock

import (
	"context"

	"github.com/FurryCoders/faapi"
)

var _ faapi.CacheService = (*CacheService)(nil)

// CacheService is a mock implementation of faapi.CacheService.
type CacheService struct {
	GetFn func(ctx context.Context, kind, key, sessionID string) (*faapi.CacheEntry, error)
	PutFn func(ctx context.Context, entry *faapi.CacheEntry) error
}

func (s *CacheService) Get(ctx context.Context, kind, key, sessionID string) (*faapi.CacheEntry, error) {
	return s.GetFn(ctx, kind, key, sessionID)
}

func (s *CacheService) Put(ctx context.Context, entry *faapi.CacheEntry) error {
	return s.PutFn(ctx, entry)
}
