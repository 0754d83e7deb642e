package mock

import (
	"context"

	"github.com/FurryCoders/faapi"
)

var _ faapi.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of faapi.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, key string) error
}

func (l *Limiter) Wait(ctx context.Context, key string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, key)
}
