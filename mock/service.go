package mock

import (
	"context"

	"github.com/FurryCoders/faapi"
)

var _ faapi.SubmissionService = (*SubmissionService)(nil)

// SubmissionService is a mock implementation of faapi.SubmissionService.
type SubmissionService struct {
	SubmissionFn func(ctx context.Context, session *faapi.Session, id int64) (*faapi.Submission, error)
	GalleryFn    func(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error)
	ScrapsFn     func(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error)
	FavoritesFn  func(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error)
}

func (s *SubmissionService) Submission(ctx context.Context, session *faapi.Session, id int64) (*faapi.Submission, error) {
	return s.SubmissionFn(ctx, session, id)
}

func (s *SubmissionService) Gallery(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error) {
	return s.GalleryFn(ctx, session, username, page)
}

func (s *SubmissionService) Scraps(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error) {
	return s.ScrapsFn(ctx, session, username, page)
}

func (s *SubmissionService) Favorites(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error) {
	return s.FavoritesFn(ctx, session, username, page)
}

var _ faapi.JournalService = (*JournalService)(nil)

// JournalService is a mock implementation of faapi.JournalService.
type JournalService struct {
	JournalFn  func(ctx context.Context, session *faapi.Session, id int64) (*faapi.Journal, error)
	JournalsFn func(ctx context.Context, session *faapi.Session, username, page string) (*faapi.JournalsFolder, error)
}

func (s *JournalService) Journal(ctx context.Context, session *faapi.Session, id int64) (*faapi.Journal, error) {
	return s.JournalFn(ctx, session, id)
}

func (s *JournalService) Journals(ctx context.Context, session *faapi.Session, username, page string) (*faapi.JournalsFolder, error) {
	return s.JournalsFn(ctx, session, username, page)
}

var _ faapi.UserService = (*UserService)(nil)

// UserService is a mock implementation of faapi.UserService.
type UserService struct {
	UserFn      func(ctx context.Context, session *faapi.Session, username string) (*faapi.User, error)
	WatchlistFn func(ctx context.Context, session *faapi.Session, username, page string) (*faapi.Watchlist, error)
}

func (s *UserService) User(ctx context.Context, session *faapi.Session, username string) (*faapi.User, error) {
	return s.UserFn(ctx, session, username)
}

func (s *UserService) Watchlist(ctx context.Context, session *faapi.Session, username, page string) (*faapi.Watchlist, error) {
	return s.WatchlistFn(ctx, session, username, page)
}
