package goquery

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/FurryCoders/faapi"
)

// Compile-time interface verification.
var (
	_ faapi.SubmissionParser = (*Parser)(nil)
	_ faapi.JournalParser    = (*Parser)(nil)
	_ faapi.UserParser       = (*Parser)(nil)
)

// Parser parses Fur Affinity pages into domain records. It only supports
// the site's modern template; classic-template accounts render pages it
// cannot read.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// parse builds a lenient DOM from the page HTML and rejects interstitial
// pages (login walls, system errors) before entity parsing.
func (p *Parser) parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, faapi.Errorf(faapi.EINVALID, "failed to parse HTML: %v", err)
	}
	if err := classify(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// classify inspects a page for the site's interstitial responses, which
// are served with status 200 and must be told apart from entity pages.
func classify(doc *goquery.Document) error {
	title := NormalizeSpace(doc.Find("title").First().Text())
	if strings.Contains(title, "System Error") {
		return faapi.Errorf(faapi.ENOTFOUND, "page not found")
	}

	if notice := doc.Find("section.notice-message"); notice.Length() > 0 {
		msg := NormalizeSpace(notice.Find("div.section-body").Text())
		if msg == "" {
			msg = NormalizeSpace(notice.Text())
		}
		if strings.Contains(strings.ToLower(msg), "not in our database") {
			return faapi.Errorf(faapi.ENOTFOUND, "page not found")
		}
		return faapi.Errorf(faapi.EUNAUTHORIZED, "login required")
	}

	return nil
}

// popupDate is the target for the site's date spans: the precise timestamp
// lives in the title attribute when the account renders fuzzy dates, and in
// the element text otherwise.
var popupDate = faapi.Target{Candidates: []faapi.Candidate{
	{Selector: "span.popup_date", Attr: "title"},
	{Selector: "span.popup_date"},
}}

// Date layouts used across the site.
const (
	dateLayoutFull  = "Jan 2, 2006 03:04 PM"
	dateLayoutShort = "Jan 2, 2006"
)

// parseDate parses a site timestamp, trying the full layout first.
// Returns the zero time if the value matches no known layout.
func parseDate(s string) time.Time {
	s = NormalizeSpace(s)
	for _, layout := range []string{dateLayoutFull, dateLayoutShort} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// dateOf extracts and parses the popup date inside sel.
func dateOf(sel *goquery.Selection) time.Time {
	got := extract(sel, popupDate)
	if !got.Found {
		return time.Time{}
	}
	return parseDate(got.Text)
}

// idFromHref extracts the numeric entity ID from a view or journal URL
// such as "/view/12345/" or "/journal/67890/". Returns 0 if none found.
func idFromHref(href string) int64 {
	for _, part := range strings.Split(strings.Trim(href, "/"), "/") {
		if id, err := strconv.ParseInt(part, 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return 0
}

// usernameFromHref extracts the normalized username from a user URL such
// as "/user/fender/". Returns "" for non-user URLs.
func usernameFromHref(href string) string {
	parts := strings.Split(strings.Trim(href, "/"), "/")
	if len(parts) >= 2 && parts[0] == "user" {
		return faapi.NormalizeUsername(parts[1])
	}
	return ""
}

// absoluteURL resolves the protocol-relative URLs the site uses for static
// assets ("//d.furaffinity.net/...").
func absoluteURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// innerHTML returns the normalized inner HTML of the first element in sel,
// or "" if sel is empty or unreadable.
func innerHTML(sel *goquery.Selection) string {
	h, err := sel.First().Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(h)
}

// parseInt converts normalized digit text to an int, tolerating thousands
// separators. Returns 0 on anything else.
func parseInt(s string) int {
	s = strings.ReplaceAll(NormalizeSpace(s), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// mentions collects normalized usernames linked from a block of rendered
// text, in document order, deduplicated.
func mentions(sel *goquery.Selection) []string {
	names := []string{}
	seen := make(map[string]bool)
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimPrefix(href, "https://www.furaffinity.net")
		name := usernameFromHref(href)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	})
	return names
}

// statusAndName splits a displayed username into its status symbol prefix
// (~, !, ∞, etc.) and the bare name.
func statusAndName(display string) (status, name string) {
	display = NormalizeSpace(display)
	for _, prefix := range []string{"~", "!", "∞", "@"} {
		if strings.HasPrefix(display, prefix) {
			return prefix, strings.TrimSpace(strings.TrimPrefix(display, prefix))
		}
	}
	return "", display
}
