package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/FurryCoders/faapi"
)

var (
	userAvatar = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: "img.user-nav-avatar", Attr: "src"},
		{Selector: `meta[property="og:image"]`, Attr: "content"},
	}}
	userBanner = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: "img.site-banner", Attr: "src"},
	}}
)

// ParseUser parses a user's personal page into a full user record.
func (p *Parser) ParseUser(html string) (*faapi.User, error) {
	doc, err := p.parse(html)
	if err != nil {
		return nil, err
	}

	page := doc.Find("div#user-profile").First()
	if page.Length() == 0 {
		return nil, faapi.Errorf(faapi.EINVALID, "not a user page")
	}

	u := &faapi.User{
		Info:     map[string]string{},
		Contacts: map[string]string{},
	}

	u.Status, u.Name = statusAndName(page.Find("div.username h2 span").First().Text())
	if u.Name == "" {
		return nil, faapi.Errorf(faapi.EINVALID, "user page missing username")
	}

	u.Title, u.JoinDate = parseUserTitle(page.Find("div.username span.user-title").First().Text())
	u.Profile = innerHTML(page.Find("div.userpage-profile").First())

	if got := extract(page, userAvatar); got.Found {
		u.AvatarURL = absoluteURL(got.Text)
	}
	if got := extract(page, userBanner); got.Found {
		u.BannerURL = absoluteURL(got.Text)
	}

	u.Stats = parseUserStats(page.Find("div.user-stats").First())

	page.Find("section#userpage-info div.info-item").Each(func(_ int, row *goquery.Selection) {
		key := NormalizeSpace(row.Find("strong").Text())
		if key != "" {
			u.Info[key] = NormalizeSpace(row.Find("span").Text())
		}
	})
	page.Find("section#userpage-contact div.user-contact-item").Each(func(_ int, row *goquery.Selection) {
		key := NormalizeSpace(row.Find("strong").Text())
		if key != "" {
			u.Contacts[key] = NormalizeSpace(row.Find("span").Text())
		}
	})

	page.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		switch {
		case strings.HasPrefix(href, "/unwatch/"):
			u.Watched = true
			u.WatchedToggleLink = absoluteURL(href)
		case strings.HasPrefix(href, "/watch/"):
			u.Watched = false
			u.WatchedToggleLink = absoluteURL(href)
		case strings.HasPrefix(href, "/unblock/"):
			u.Blocked = true
			u.BlockedToggleLink = absoluteURL(href)
		case strings.HasPrefix(href, "/block/"):
			u.Blocked = false
			u.BlockedToggleLink = absoluteURL(href)
		}
	})

	return u, nil
}

// parseUserTitle splits the "Title | Member Since: Jan 2, 2006" line shown
// under the username. Either half may be missing.
func parseUserTitle(s string) (title string, joined *time.Time) {
	s = NormalizeSpace(s)
	title, after, found := strings.Cut(s, "|")
	if !found {
		// The line may carry only the member-since half.
		if rest, ok := strings.CutPrefix(s, "Member Since:"); ok {
			if ts := parseDate(rest); !ts.IsZero() {
				return "", &ts
			}
		}
		return s, nil
	}
	title = NormalizeSpace(title)
	if rest, ok := strings.CutPrefix(NormalizeSpace(after), "Member Since:"); ok {
		if ts := parseDate(rest); !ts.IsZero() {
			joined = &ts
		}
	}
	return title, joined
}

// parseUserStats reads the labeled counters from the stats block.
func parseUserStats(block *goquery.Selection) faapi.UserStats {
	var stats faapi.UserStats
	block.Find("div").Each(func(_ int, row *goquery.Selection) {
		label := strings.ToLower(NormalizeSpace(row.Find("span.stat-name").Text()))
		value := parseInt(row.Find("span.stat-value").Text())
		switch label {
		case "views":
			stats.Views = value
		case "submissions":
			stats.Submissions = value
		case "favs", "favorites":
			stats.Favorites = value
		case "comments earned":
			stats.CommentsEarned = value
		case "comments made":
			stats.CommentsMade = value
		case "journals":
			stats.Journals = value
		}
	})
	return stats
}
