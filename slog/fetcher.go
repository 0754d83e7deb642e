// Package slog provides logging decorators for the root service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/FurryCoders/faapi"
)

// Ensure LoggingFetcher implements faapi.Fetcher.
var _ faapi.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   faapi.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next faapi.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, session *faapi.Session, path string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"path", path,
			"session", session.ID(),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, session, path)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
