// Package cache provides caching decorators for the root service
// interfaces. Each decorator serves stored responses while they are fresh
// and falls through to the wrapped service on a miss.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/FurryCoders/faapi"
)

// cacheKey builds the resource key for a listing operation. Usernames are
// normalized so display variants of the same name share an entry.
func cacheKey(username, page string) string {
	if page == "" {
		page = "1"
	}
	return faapi.NormalizeUsername(username) + "/" + page
}

// lookup retrieves a cached response and decodes it into out. Returns
// false on a miss or an undecodable payload; stale or corrupt entries are
// never served.
func lookup(ctx context.Context, cache faapi.CacheService, kind, key, sessionID string, out any) bool {
	entry, err := cache.Get(ctx, kind, key, sessionID)
	if err != nil {
		return false
	}
	return json.Unmarshal(entry.Payload, out) == nil
}

// store serializes a response and writes it to the cache. Failures are
// logged and swallowed: a broken cache must not fail a served request.
func store(ctx context.Context, cache faapi.CacheService, logger *slog.Logger, kind, key, sessionID string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		logger.Warn("cache encode failed", "kind", kind, "key", key, "err", err)
		return
	}
	err = cache.Put(ctx, &faapi.CacheEntry{
		Kind:      kind,
		Key:       key,
		SessionID: sessionID,
		Payload:   payload,
	})
	if err != nil {
		logger.Warn("cache store failed", "kind", kind, "key", key, "err", err)
	}
}

// Ensure CachedSubmissionService implements faapi.SubmissionService.
var _ faapi.SubmissionService = (*CachedSubmissionService)(nil)

// CachedSubmissionService wraps a SubmissionService with response caching.
type CachedSubmissionService struct {
	next   faapi.SubmissionService
	cache  faapi.CacheService
	logger *slog.Logger
}

// NewCachedSubmissionService creates a new CachedSubmissionService.
func NewCachedSubmissionService(next faapi.SubmissionService, cache faapi.CacheService, logger *slog.Logger) *CachedSubmissionService {
	return &CachedSubmissionService{next: next, cache: cache, logger: logger}
}

// Submission serves a cached submission when fresh, fetching otherwise.
func (s *CachedSubmissionService) Submission(ctx context.Context, session *faapi.Session, id int64) (*faapi.Submission, error) {
	key := strconv.FormatInt(id, 10)
	var cached faapi.Submission
	if lookup(ctx, s.cache, "submission", key, session.ID(), &cached) {
		return &cached, nil
	}
	sub, err := s.next.Submission(ctx, session, id)
	if err != nil {
		return nil, err
	}
	store(ctx, s.cache, s.logger, "submission", key, session.ID(), sub)
	return sub, nil
}

// Gallery serves a cached gallery page when fresh, fetching otherwise.
func (s *CachedSubmissionService) Gallery(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error) {
	return s.listing(ctx, session, "gallery", username, page, s.next.Gallery)
}

// Scraps serves a cached scraps page when fresh, fetching otherwise.
func (s *CachedSubmissionService) Scraps(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error) {
	return s.listing(ctx, session, "scraps", username, page, s.next.Scraps)
}

// Favorites serves a cached favorites page when fresh, fetching otherwise.
func (s *CachedSubmissionService) Favorites(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error) {
	return s.listing(ctx, session, "favorites", username, page, s.next.Favorites)
}

func (s *CachedSubmissionService) listing(ctx context.Context, session *faapi.Session, kind, username, page string, next func(context.Context, *faapi.Session, string, string) (*faapi.SubmissionsFolder, error)) (*faapi.SubmissionsFolder, error) {
	key := cacheKey(username, page)
	var cached faapi.SubmissionsFolder
	if lookup(ctx, s.cache, kind, key, session.ID(), &cached) {
		return &cached, nil
	}
	folder, err := next(ctx, session, username, page)
	if err != nil {
		return nil, err
	}
	store(ctx, s.cache, s.logger, kind, key, session.ID(), folder)
	return folder, nil
}

// Ensure CachedJournalService implements faapi.JournalService.
var _ faapi.JournalService = (*CachedJournalService)(nil)

// CachedJournalService wraps a JournalService with response caching.
type CachedJournalService struct {
	next   faapi.JournalService
	cache  faapi.CacheService
	logger *slog.Logger
}

// NewCachedJournalService creates a new CachedJournalService.
func NewCachedJournalService(next faapi.JournalService, cache faapi.CacheService, logger *slog.Logger) *CachedJournalService {
	return &CachedJournalService{next: next, cache: cache, logger: logger}
}

// Journal serves a cached journal when fresh, fetching otherwise.
func (s *CachedJournalService) Journal(ctx context.Context, session *faapi.Session, id int64) (*faapi.Journal, error) {
	key := strconv.FormatInt(id, 10)
	var cached faapi.Journal
	if lookup(ctx, s.cache, "journal", key, session.ID(), &cached) {
		return &cached, nil
	}
	journal, err := s.next.Journal(ctx, session, id)
	if err != nil {
		return nil, err
	}
	store(ctx, s.cache, s.logger, "journal", key, session.ID(), journal)
	return journal, nil
}

// Journals serves a cached journals page when fresh, fetching otherwise.
func (s *CachedJournalService) Journals(ctx context.Context, session *faapi.Session, username, page string) (*faapi.JournalsFolder, error) {
	key := cacheKey(username, page)
	var cached faapi.JournalsFolder
	if lookup(ctx, s.cache, "journals", key, session.ID(), &cached) {
		return &cached, nil
	}
	folder, err := s.next.Journals(ctx, session, username, page)
	if err != nil {
		return nil, err
	}
	store(ctx, s.cache, s.logger, "journals", key, session.ID(), folder)
	return folder, nil
}

// Ensure CachedUserService implements faapi.UserService.
var _ faapi.UserService = (*CachedUserService)(nil)

// CachedUserService wraps a UserService with response caching.
type CachedUserService struct {
	next   faapi.UserService
	cache  faapi.CacheService
	logger *slog.Logger
}

// NewCachedUserService creates a new CachedUserService.
func NewCachedUserService(next faapi.UserService, cache faapi.CacheService, logger *slog.Logger) *CachedUserService {
	return &CachedUserService{next: next, cache: cache, logger: logger}
}

// User serves a cached user when fresh, fetching otherwise.
func (s *CachedUserService) User(ctx context.Context, session *faapi.Session, username string) (*faapi.User, error) {
	key := faapi.NormalizeUsername(username)
	var cached faapi.User
	if lookup(ctx, s.cache, "user", key, session.ID(), &cached) {
		return &cached, nil
	}
	user, err := s.next.User(ctx, session, username)
	if err != nil {
		return nil, err
	}
	store(ctx, s.cache, s.logger, "user", key, session.ID(), user)
	return user, nil
}

// Watchlist serves a cached watchlist page when fresh, fetching otherwise.
func (s *CachedUserService) Watchlist(ctx context.Context, session *faapi.Session, username, page string) (*faapi.Watchlist, error) {
	key := cacheKey(username, page)
	var cached faapi.Watchlist
	if lookup(ctx, s.cache, "watchlist", key, session.ID(), &cached) {
		return &cached, nil
	}
	watchlist, err := s.next.Watchlist(ctx, session, username, page)
	if err != nil {
		return nil, err
	}
	store(ctx, s.cache, s.logger, "watchlist", key, session.ID(), watchlist)
	return watchlist, nil
}
