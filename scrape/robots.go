package scrape

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/FurryCoders/faapi"
)

// ParseRobots reads a robots.txt document and extracts the rules that
// apply to all user agents (the "*" group): disallowed path prefixes and
// the crawl delay. Directives for named agents are ignored.
func ParseRobots(r io.Reader) (*faapi.Robots, error) {
	robots := &faapi.Robots{}

	// Consecutive User-agent lines name one group; the first directive
	// after them closes the group's member list.
	applies := false
	openingGroup := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		if field != "user-agent" {
			openingGroup = false
		}

		switch field {
		case "user-agent":
			if !openingGroup {
				applies = false
				openingGroup = true
			}
			if value == "*" {
				applies = true
			}
		case "disallow":
			if applies && value != "" {
				robots.Disallowed = append(robots.Disallowed, value)
			}
		case "crawl-delay":
			if applies {
				if secs, err := strconv.ParseFloat(value, 64); err == nil {
					robots.CrawlDelay = time.Duration(secs * float64(time.Second))
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, faapi.Errorf(faapi.EINVALID, "reading robots.txt: %v", err)
	}

	return robots, nil
}

// DefaultRobots returns the pinned Fur Affinity robots policy, used when
// the live robots.txt cannot be fetched at startup.
func DefaultRobots() *faapi.Robots {
	return &faapi.Robots{
		Disallowed: []string{
			"/search",
			"/msg/",
			"/journals/comments/",
		},
		CrawlDelay: 1 * time.Second,
	}
}

// StaticRobots serves a fixed robots policy, resolved once at startup.
type StaticRobots struct {
	Policy *faapi.Robots
}

var _ faapi.RobotsService = (*StaticRobots)(nil)

func (s *StaticRobots) Robots() *faapi.Robots {
	if s.Policy == nil {
		return DefaultRobots()
	}
	return s.Policy
}

// FetchRobots retrieves and parses the live robots.txt via the fetcher.
// Callers typically fall back to DefaultRobots when this fails.
func FetchRobots(ctx context.Context, fetcher faapi.Fetcher) (*faapi.Robots, error) {
	body, err := fetcher.Fetch(ctx, faapi.Anonymous(), "/robots.txt")
	if err != nil {
		return nil, err
	}
	return ParseRobots(strings.NewReader(body))
}
