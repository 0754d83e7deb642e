package mock

import (
	"context"

	"github.com/FurryCoders/faapi"
)

var _ faapi.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of faapi.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, session *faapi.Session, path string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, session *faapi.Session, path string) (string, error) {
	return f.FetchFn(ctx, session, path)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
