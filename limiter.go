package faapi

import "context"

// Limiter paces requests per key. The scrape package uses it to honor the
// site's crawl delay; the http package uses it to pace individual clients.
type Limiter interface {
	// Wait blocks until the key's rate limit allows another request, or
	// the context is canceled.
	Wait(ctx context.Context, key string) error
}
