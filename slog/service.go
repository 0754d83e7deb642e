package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/FurryCoders/faapi"
)

// Ensure LoggingSubmissionService implements faapi.SubmissionService.
var _ faapi.SubmissionService = (*LoggingSubmissionService)(nil)

// LoggingSubmissionService wraps a SubmissionService with debug logging.
type LoggingSubmissionService struct {
	next   faapi.SubmissionService
	logger *slog.Logger
}

// NewLoggingSubmissionService creates a new LoggingSubmissionService.
func NewLoggingSubmissionService(next faapi.SubmissionService, logger *slog.Logger) *LoggingSubmissionService {
	return &LoggingSubmissionService{next: next, logger: logger}
}

// Submission delegates to the wrapped service and logs the operation.
func (s *LoggingSubmissionService) Submission(ctx context.Context, session *faapi.Session, id int64) (sub *faapi.Submission, err error) {
	defer func(begin time.Time) {
		s.logger.Info("submission",
			"id", id,
			"session", session.ID(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Submission(ctx, session, id)
}

// Gallery delegates to the wrapped service and logs the operation.
func (s *LoggingSubmissionService) Gallery(ctx context.Context, session *faapi.Session, username, page string) (folder *faapi.SubmissionsFolder, err error) {
	defer func(begin time.Time) {
		s.logger.Info("gallery",
			"username", username,
			"page", page,
			"count", folderLen(folder),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Gallery(ctx, session, username, page)
}

// Scraps delegates to the wrapped service and logs the operation.
func (s *LoggingSubmissionService) Scraps(ctx context.Context, session *faapi.Session, username, page string) (folder *faapi.SubmissionsFolder, err error) {
	defer func(begin time.Time) {
		s.logger.Info("scraps",
			"username", username,
			"page", page,
			"count", folderLen(folder),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scraps(ctx, session, username, page)
}

// Favorites delegates to the wrapped service and logs the operation.
func (s *LoggingSubmissionService) Favorites(ctx context.Context, session *faapi.Session, username, page string) (folder *faapi.SubmissionsFolder, err error) {
	defer func(begin time.Time) {
		s.logger.Info("favorites",
			"username", username,
			"page", page,
			"count", folderLen(folder),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Favorites(ctx, session, username, page)
}

func folderLen(folder *faapi.SubmissionsFolder) int {
	if folder == nil {
		return 0
	}
	return len(folder.Results)
}

// Ensure LoggingJournalService implements faapi.JournalService.
var _ faapi.JournalService = (*LoggingJournalService)(nil)

// LoggingJournalService wraps a JournalService with debug logging.
type LoggingJournalService struct {
	next   faapi.JournalService
	logger *slog.Logger
}

// NewLoggingJournalService creates a new LoggingJournalService.
func NewLoggingJournalService(next faapi.JournalService, logger *slog.Logger) *LoggingJournalService {
	return &LoggingJournalService{next: next, logger: logger}
}

// Journal delegates to the wrapped service and logs the operation.
func (s *LoggingJournalService) Journal(ctx context.Context, session *faapi.Session, id int64) (journal *faapi.Journal, err error) {
	defer func(begin time.Time) {
		s.logger.Info("journal",
			"id", id,
			"session", session.ID(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Journal(ctx, session, id)
}

// Journals delegates to the wrapped service and logs the operation.
func (s *LoggingJournalService) Journals(ctx context.Context, session *faapi.Session, username, page string) (folder *faapi.JournalsFolder, err error) {
	defer func(begin time.Time) {
		count := 0
		if folder != nil {
			count = len(folder.Results)
		}
		s.logger.Info("journals",
			"username", username,
			"page", page,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Journals(ctx, session, username, page)
}

// Ensure LoggingUserService implements faapi.UserService.
var _ faapi.UserService = (*LoggingUserService)(nil)

// LoggingUserService wraps a UserService with debug logging.
type LoggingUserService struct {
	next   faapi.UserService
	logger *slog.Logger
}

// NewLoggingUserService creates a new LoggingUserService.
func NewLoggingUserService(next faapi.UserService, logger *slog.Logger) *LoggingUserService {
	return &LoggingUserService{next: next, logger: logger}
}

// User delegates to the wrapped service and logs the operation.
func (s *LoggingUserService) User(ctx context.Context, session *faapi.Session, username string) (user *faapi.User, err error) {
	defer func(begin time.Time) {
		s.logger.Info("user",
			"username", username,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.User(ctx, session, username)
}

// Watchlist delegates to the wrapped service and logs the operation.
func (s *LoggingUserService) Watchlist(ctx context.Context, session *faapi.Session, username, page string) (watchlist *faapi.Watchlist, err error) {
	defer func(begin time.Time) {
		count := 0
		if watchlist != nil {
			count = len(watchlist.Results)
		}
		s.logger.Info("watchlist",
			"username", username,
			"page", page,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Watchlist(ctx, session, username, page)
}
