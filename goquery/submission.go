package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FurryCoders/faapi"
)

// Targets for submission page scalar fields, most-specific first.
var (
	submissionID = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: `meta[property="og:url"]`, Attr: "content"},
		{Selector: `div.favorite-nav a[href*="/fav/"]`, Attr: "href"},
		{Selector: `div.favorite-nav a[href*="/unfav/"]`, Attr: "href"},
	}}
	submissionTitle = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: "div.submission-title h2 p"},
		{Selector: "div.submission-title"},
		{Selector: `meta[property="og:title"]`, Attr: "content"},
	}}
	submissionRating = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: "div.rating span.rating-box"},
		{Selector: `meta[name="twitter:data2"]`, Attr: "content"},
	}}
	submissionFile = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: "div.download a", Attr: "href"},
	}}
	submissionThumbnail = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: "img#submissionImg", Attr: "data-preview-src"},
		{Selector: "img#submissionImg", Attr: "src"},
	}}
	submissionFolder = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: "span.folder-name"},
	}}
)

// ParseSubmission parses a submission page into a full submission record.
func (p *Parser) ParseSubmission(html string) (*faapi.Submission, error) {
	doc, err := p.parse(html)
	if err != nil {
		return nil, err
	}

	page := doc.Find("div#submission_page").First()
	if page.Length() == 0 {
		return nil, faapi.Errorf(faapi.EINVALID, "not a submission page")
	}

	sub := &faapi.Submission{
		Tags:        []string{},
		Mentions:    []string{},
		UserFolders: []faapi.SubmissionUserFolder{},
		Comments:    []*faapi.Comment{},
		Folder:      "gallery",
	}

	if got := extract(doc.Selection, submissionID); got.Found {
		sub.ID = idFromHref(got.Text)
	}
	if got := extract(page, submissionTitle); got.Found {
		sub.Title = got.Text
	}

	sub.Author = parseSubmissionAuthor(page)
	sub.Date = dateOf(page.Find("div.submission-id-sub-container"))

	desc := page.Find("div.submission-description").First()
	sub.Description = innerHTML(desc)
	sub.Footer = innerHTML(page.Find("div.submission-footer").First())
	sub.Mentions = mentions(desc)

	page.Find("section.tags-row a").Each(func(_ int, a *goquery.Selection) {
		if tag := NormalizeSpace(a.Text()); tag != "" {
			sub.Tags = append(sub.Tags, tag)
		}
	})

	stats := page.Find("section.stats-container").First()
	sub.Stats = faapi.SubmissionStats{
		Views:     parseInt(stats.Find("span.views").Text()),
		Comments:  parseInt(stats.Find("span.comments").Text()),
		Favorites: parseInt(stats.Find("span.favorites").Text()),
	}

	info := page.Find("section.info.text").First()
	sub.Category = NormalizeSpace(info.Find("span.category-name").Text())
	sub.Type = NormalizeSpace(info.Find("span.type-name").Text())
	info.Find("div").Each(func(_ int, row *goquery.Selection) {
		label := strings.ToLower(NormalizeSpace(row.Find("strong").Text()))
		value := NormalizeSpace(row.Find("span").Text())
		switch label {
		case "species":
			sub.Species = value
		case "gender":
			sub.Gender = value
		}
	})

	if got := extract(page, submissionRating); got.Found {
		sub.Rating = strings.ToLower(got.Text)
	}
	if got := extract(page, submissionFile); got.Found {
		sub.FileURL = absoluteURL(got.Text)
	}
	if got := extract(page, submissionThumbnail); got.Found {
		sub.ThumbnailURL = absoluteURL(got.Text)
	}
	if got := extract(page, submissionFolder); got.Found {
		sub.Folder = strings.ToLower(got.Text)
	}

	page.Find("section.folder-list-container a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		name := NormalizeSpace(a.Text())
		if name == "" {
			return
		}
		group, _ := a.Attr("data-group")
		sub.UserFolders = append(sub.UserFolders, faapi.SubmissionUserFolder{
			Name:  name,
			URL:   absoluteURL(href),
			Group: group,
		})
	})

	page.Find("div.favorite-nav a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		switch text := strings.ToLower(NormalizeSpace(a.Text())); {
		case text == "prev":
			if id := idFromHref(href); id > 0 {
				sub.Prev = &id
			}
		case text == "next":
			if id := idFromHref(href); id > 0 {
				sub.Next = &id
			}
		case strings.Contains(href, "/unfav/"):
			sub.Favorite = true
			sub.FavoriteToggleLink = absoluteURL(href)
		case strings.Contains(href, "/fav/"):
			sub.Favorite = false
			sub.FavoriteToggleLink = absoluteURL(href)
		}
	})

	sub.Comments = parseComments(doc.Find("div#comments-submission"))

	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return sub, nil
}

// parseSubmissionAuthor reads the author block next to the submission title.
func parseSubmissionAuthor(page *goquery.Selection) faapi.UserPartial {
	container := page.Find("div.submission-id-sub-container").First()
	author := faapi.UserPartial{
		Name: NormalizeSpace(container.Find("a strong").First().Text()),
	}
	if src, ok := page.Find("img.submission-user-icon").First().Attr("src"); ok {
		author.AvatarURL = absoluteURL(src)
	}
	if title, ok := container.Find("a strong").First().Attr("title"); ok {
		author.Title = NormalizeSpace(title)
	}
	return author
}
