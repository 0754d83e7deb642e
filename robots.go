package faapi

import (
	"strings"
	"time"
)

// Robots holds the site's crawling rules for the wildcard agent: path
// prefixes that must not be fetched and the delay to keep between requests.
type Robots struct {
	Disallowed []string
	CrawlDelay time.Duration
}

// Allowed reports whether the path may be fetched under the rules.
func (r *Robots) Allowed(path string) bool {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for _, prefix := range r.Disallowed {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// RobotsService provides the crawling rules to honor when fetching pages.
type RobotsService interface {
	Robots() *Robots
}
