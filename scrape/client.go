// Package scrape orchestrates page retrieval against the live site: it
// checks robots rules, paces requests, fetches pages with retry, and hands
// the HTML to parsers. It implements the service interfaces of the root
// package.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FurryCoders/faapi"
)

// upstreamKey is the limiter key shared by all outbound fetches. The site's
// crawl delay applies per client, not per page.
const upstreamKey = "upstream"

// Client retrieves and parses pages from the live site.
type Client struct {
	fetcher     faapi.Fetcher
	submissions faapi.SubmissionParser
	journals    faapi.JournalParser
	users       faapi.UserParser
	robots      faapi.RobotsService
	limiter     faapi.Limiter
	logger      *slog.Logger
	retryDelays []time.Duration
}

var _ faapi.SubmissionService = (*Client)(nil)
var _ faapi.JournalService = (*Client)(nil)
var _ faapi.UserService = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRobots sets the robots policy source. Defaults to the pinned policy.
func WithRobots(robots faapi.RobotsService) ClientOption {
	return func(c *Client) { c.robots = robots }
}

// WithLimiter sets the pacer applied before each fetch. Defaults to a
// limiter derived from the robots crawl delay.
func WithLimiter(limiter faapi.Limiter) ClientOption {
	return func(c *Client) { c.limiter = limiter }
}

// WithLogger sets the logger for retry and fetch diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithRetryDelays sets the backoff delays used when the upstream is
// unavailable.
func WithRetryDelays(delays []time.Duration) ClientOption {
	return func(c *Client) { c.retryDelays = delays }
}

// NewClient returns a Client fetching through fetcher and parsing with the
// given parsers.
func NewClient(fetcher faapi.Fetcher, submissions faapi.SubmissionParser, journals faapi.JournalParser, users faapi.UserParser, opts ...ClientOption) *Client {
	c := &Client{
		fetcher:     fetcher,
		submissions: submissions,
		journals:    journals,
		users:       users,
		robots:      &StaticRobots{},
		logger:      slog.Default(),
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.limiter == nil {
		c.limiter = NewKeyLimiter(rpsFromDelay(c.robots.Robots().CrawlDelay))
	}
	return c
}

// rpsFromDelay converts a crawl delay into a requests-per-second rate.
func rpsFromDelay(delay time.Duration) float64 {
	if delay <= 0 {
		return 1
	}
	return float64(time.Second) / float64(delay)
}

// fetch runs the shared pipeline for one page: robots check, pacing, and
// retried retrieval.
func (c *Client) fetch(ctx context.Context, session *faapi.Session, path string) (string, error) {
	if !c.robots.Robots().Allowed(path) {
		return "", faapi.Errorf(faapi.EFORBIDDEN, "path %q is disallowed by the site's robots rules", path)
	}
	if err := c.limiter.Wait(ctx, upstreamKey); err != nil {
		return "", err
	}
	return FetchWithRetryDelays(ctx, func(ctx context.Context) (string, error) {
		return c.fetcher.Fetch(ctx, session, path)
	}, c.logf, c.retryDelays)
}

func (c *Client) logf(format string, args ...any) {
	c.logger.Warn(fmt.Sprintf(format, args...))
}

// pageOrDefault returns the first-page cursor when page is empty.
func pageOrDefault(page string) string {
	if page == "" {
		return "1"
	}
	return page
}

// Submission retrieves a single submission by ID.
func (c *Client) Submission(ctx context.Context, session *faapi.Session, id int64) (*faapi.Submission, error) {
	if id <= 0 {
		return nil, faapi.Errorf(faapi.EINVALID, "submission ID must be positive")
	}
	html, err := c.fetch(ctx, session, fmt.Sprintf("/view/%d/", id))
	if err != nil {
		return nil, err
	}
	return c.submissions.ParseSubmission(html)
}

// Gallery retrieves one page of a user's gallery folder.
func (c *Client) Gallery(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error) {
	return c.listing(ctx, session, "gallery", username, page)
}

// Scraps retrieves one page of a user's scraps folder.
func (c *Client) Scraps(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error) {
	return c.listing(ctx, session, "scraps", username, page)
}

// Favorites retrieves one page of a user's favorites folder. The page
// cursor is the opaque token from the previous page's Next field.
func (c *Client) Favorites(ctx context.Context, session *faapi.Session, username, page string) (*faapi.SubmissionsFolder, error) {
	return c.listing(ctx, session, "favorites", username, page)
}

func (c *Client) listing(ctx context.Context, session *faapi.Session, folder, username, page string) (*faapi.SubmissionsFolder, error) {
	username = faapi.NormalizeUsername(username)
	if username == "" {
		return nil, faapi.Errorf(faapi.EINVALID, "username required")
	}
	html, err := c.fetch(ctx, session, fmt.Sprintf("/%s/%s/%s/", folder, username, pageOrDefault(page)))
	if err != nil {
		return nil, err
	}
	return c.submissions.ParseSubmissionListing(html)
}

// Journal retrieves a single journal by ID.
func (c *Client) Journal(ctx context.Context, session *faapi.Session, id int64) (*faapi.Journal, error) {
	if id <= 0 {
		return nil, faapi.Errorf(faapi.EINVALID, "journal ID must be positive")
	}
	html, err := c.fetch(ctx, session, fmt.Sprintf("/journal/%d/", id))
	if err != nil {
		return nil, err
	}
	return c.journals.ParseJournal(html)
}

// Journals retrieves one page of a user's journals folder.
func (c *Client) Journals(ctx context.Context, session *faapi.Session, username, page string) (*faapi.JournalsFolder, error) {
	username = faapi.NormalizeUsername(username)
	if username == "" {
		return nil, faapi.Errorf(faapi.EINVALID, "username required")
	}
	html, err := c.fetch(ctx, session, fmt.Sprintf("/journals/%s/%s/", username, pageOrDefault(page)))
	if err != nil {
		return nil, err
	}
	return c.journals.ParseJournalListing(html)
}

// User retrieves a user's details, profile text, and stats.
func (c *Client) User(ctx context.Context, session *faapi.Session, username string) (*faapi.User, error) {
	username = faapi.NormalizeUsername(username)
	if username == "" {
		return nil, faapi.Errorf(faapi.EINVALID, "username required")
	}
	html, err := c.fetch(ctx, session, fmt.Sprintf("/user/%s/", username))
	if err != nil {
		return nil, err
	}
	return c.users.ParseUser(html)
}

// Watchlist retrieves one page of the users a user watches.
func (c *Client) Watchlist(ctx context.Context, session *faapi.Session, username, page string) (*faapi.Watchlist, error) {
	username = faapi.NormalizeUsername(username)
	if username == "" {
		return nil, faapi.Errorf(faapi.EINVALID, "username required")
	}
	html, err := c.fetch(ctx, session, fmt.Sprintf("/watchlist/by/%s/%s/", username, pageOrDefault(page)))
	if err != nil {
		return nil, err
	}
	return c.users.ParseWatchlist(html)
}
