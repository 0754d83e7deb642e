// Package http provides the HTTP boundary of faapi: a Fetcher that
// retrieves pages from the site, and the API server that exposes parsed
// records as JSON.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/FurryCoders/faapi"
)

// DefaultBaseURL is the site the fetcher talks to.
const DefaultBaseURL = "https://www.furaffinity.net"

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 30 * time.Second

// defaultUserAgent identifies the API to the site. The site rejects
// requests without a User-Agent header.
const defaultUserAgent = "faapi/1.0 (+https://github.com/FurryCoders/faapi)"

// Ensure Fetcher implements faapi.Fetcher at compile time.
var _ faapi.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages from the site over HTTP, authenticating with the
// session's cookies and decoding the body to UTF-8.
type Fetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithBaseURL sets the site base URL. Used by tests to point the fetcher
// at a local server.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) {
		f.baseURL = u
	}
}

// WithUserAgent sets the User-Agent header sent with page requests.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		timeout:   DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at path and returns its HTML decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, session *faapi.Session, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return "", faapi.Errorf(faapi.EINVALID, "invalid path %q: %v", path, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	if session != nil {
		for _, c := range session.Cookies {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", faapi.Errorf(faapi.EUNAVAILABLE, "fetch %s: %v", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", faapi.Errorf(faapi.ENOTFOUND, "page not found")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", faapi.Errorf(faapi.EUNAUTHORIZED, "login required")
	default:
		return "", faapi.Errorf(faapi.EUNAVAILABLE, "upstream returned HTTP %d", resp.StatusCode)
	}

	// Decode to UTF-8 based on the Content-Type charset, falling back to
	// sniffing. Undecodable content is the one fatal parse failure; the
	// page parsers downstream tolerate everything else. charset.NewReader
	// silently falls back on labels it does not know, so the declared
	// label is checked explicitly first.
	contentType := resp.Header.Get("Content-Type")
	if _, params, mimeErr := mime.ParseMediaType(contentType); mimeErr == nil {
		if label := params["charset"]; label != "" {
			if enc, _ := charset.Lookup(label); enc == nil {
				return "", faapi.Errorf(faapi.EINVALID, "page content is not decodable text: unknown charset %q", label)
			}
		}
	}
	r, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		return "", faapi.Errorf(faapi.EINVALID, "page content is not decodable text: %v", err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", faapi.Errorf(faapi.EINVALID, "page content is not decodable text: %v", err)
	}

	html := string(body)
	if !utf8.ValidString(html) {
		return "", faapi.Errorf(faapi.EINVALID, "page content is not decodable text")
	}
	return html, nil
}

// Close releases resources. A no-op for the HTTP client.
func (f *Fetcher) Close() error {
	return nil
}
