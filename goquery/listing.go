package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FurryCoders/faapi"
)

// nextPage locates the "next page" button on listing pages.
var nextPage = faapi.Target{Candidates: []faapi.Candidate{
	{Selector: "div.submission-list a.button.more", Attr: "href"},
	{Selector: "div.pagination a.button.more", Attr: "href"},
	{Selector: "a.button.standard.more", Attr: "href"},
}}

// ParseSubmissionListing parses a gallery, scraps, or favorites page.
func (p *Parser) ParseSubmissionListing(html string) (*faapi.SubmissionsFolder, error) {
	doc, err := p.parse(html)
	if err != nil {
		return nil, err
	}

	folder := &faapi.SubmissionsFolder{Results: []*faapi.SubmissionPartial{}}

	doc.Find("figure").Each(func(_ int, fig *goquery.Selection) {
		sp := parseFigure(fig)
		if sp != nil {
			folder.Results = append(folder.Results, sp)
		}
	})

	folder.Next = nextCursor(doc)
	return folder, nil
}

// ParseWatchlist parses one page of the users a user watches.
func (p *Parser) ParseWatchlist(html string) (*faapi.Watchlist, error) {
	doc, err := p.parse(html)
	if err != nil {
		return nil, err
	}

	wl := &faapi.Watchlist{Results: []*faapi.UserPartial{}}

	doc.Find(`div.watch-list-items a[href^="/user/"]`).Each(func(_ int, a *goquery.Selection) {
		status, name := statusAndName(a.Text())
		if name == "" {
			return
		}
		wl.Results = append(wl.Results, &faapi.UserPartial{Name: name, Status: status})
	})

	wl.Next = nextCursor(doc)
	return wl, nil
}

// parseFigure reads one listing thumbnail. Figure ids carry the submission
// ID ("sid-12345"); figure classes carry the rating ("r-general") and type
// ("t-image").
func parseFigure(fig *goquery.Selection) *faapi.SubmissionPartial {
	id, ok := fig.Attr("id")
	if !ok {
		return nil
	}
	sid := idFromHref(strings.TrimPrefix(id, "sid-"))
	if sid <= 0 {
		return nil
	}

	sp := &faapi.SubmissionPartial{ID: sid}

	if class, ok := fig.Attr("class"); ok {
		for _, token := range strings.Fields(class) {
			switch {
			case strings.HasPrefix(token, "r-"):
				sp.Rating = strings.TrimPrefix(token, "r-")
			case strings.HasPrefix(token, "t-"):
				sp.Type = strings.TrimPrefix(token, "t-")
			}
		}
	}

	caption := fig.Find("figcaption").First()
	titleLink := caption.Find(`a[href*="/view/"]`).First()
	sp.Title = NormalizeSpace(titleLink.Text())
	if title, ok := titleLink.Attr("title"); ok && NormalizeSpace(title) != "" {
		sp.Title = NormalizeSpace(title)
	}

	authorLink := caption.Find(`a[href^="/user/"]`).First()
	sp.Author = faapi.UserPartial{Name: NormalizeSpace(authorLink.Text())}
	if title, ok := authorLink.Attr("title"); ok {
		sp.Author.Name = NormalizeSpace(title)
	}

	if src, ok := fig.Find("img").First().Attr("src"); ok {
		sp.ThumbnailURL = absoluteURL(src)
	}

	return sp
}

// parsePageOwner reads the owner block rendered at the top of user-scoped
// pages (journals, listings, journal pages).
func parsePageOwner(header *goquery.Selection) faapi.UserPartial {
	status, name := statusAndName(header.Find("span.js-displayName").First().Text())
	owner := faapi.UserPartial{Name: name, Status: status}
	if src, ok := header.Find("img").First().Attr("src"); ok {
		owner.AvatarURL = absoluteURL(src)
	}
	return owner
}

// nextCursor returns the cursor for the following listing page: the last
// path segment of the "next" button's URL. Gallery and journal pages use
// page numbers, favorites pages an opaque token. Empty on the last page.
func nextCursor(doc *goquery.Document) string {
	got := extract(doc.Selection, nextPage)
	if !got.Found {
		return ""
	}
	parts := strings.Split(strings.Trim(got.Text, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// firstHref returns the href of the first element in sel, or "".
func firstHref(sel *goquery.Selection) string {
	href, _ := sel.First().Attr("href")
	return href
}

// trimSuffixWord strips a trailing word (case-insensitive) from normalized
// text, e.g. "12 Comments" -> "12".
func trimSuffixWord(s, word string) string {
	s = NormalizeSpace(s)
	if strings.HasSuffix(strings.ToLower(s), strings.ToLower(word)) {
		s = strings.TrimSpace(s[:len(s)-len(word)])
	}
	return s
}
