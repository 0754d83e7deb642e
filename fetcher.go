package faapi

import "context"

// Fetcher retrieves decoded HTML from site URLs.
// Implementations handle cookie authentication, charset detection, and
// upstream status mapping.
type Fetcher interface {
	// Fetch retrieves the page at path (relative to the site root) using
	// the session's cookies and returns its HTML decoded to UTF-8.
	// Returns EINVALID if the body cannot be decoded as text, ENOTFOUND
	// for missing pages, EUNAVAILABLE for upstream server errors.
	Fetch(ctx context.Context, session *Session, path string) (html string, err error)

	// Close releases client resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
