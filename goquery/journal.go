package goquery

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/FurryCoders/faapi"
)

var (
	journalID = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: `meta[property="og:url"]`, Attr: "content"},
		{Selector: `div.journal-page-header a[href*="/journal/"]`, Attr: "href"},
	}}
	journalTitle = faapi.Target{Candidates: []faapi.Candidate{
		{Selector: "h2.journal-title"},
		{Selector: `meta[property="og:title"]`, Attr: "content"},
	}}
)

// ParseJournal parses a journal page into a full journal record.
func (p *Parser) ParseJournal(html string) (*faapi.Journal, error) {
	doc, err := p.parse(html)
	if err != nil {
		return nil, err
	}

	page := doc.Find("div#journal-page").First()
	if page.Length() == 0 {
		return nil, faapi.Errorf(faapi.EINVALID, "not a journal page")
	}

	j := &faapi.Journal{
		Mentions: []string{},
		Comments: []*faapi.Comment{},
	}

	if got := extract(doc.Selection, journalID); got.Found {
		j.ID = idFromHref(got.Text)
	}
	if got := extract(page, journalTitle); got.Found {
		j.Title = got.Text
	}

	header := page.Find("div.journal-page-header").First()
	j.Author = parsePageOwner(header)
	j.Date = dateOf(header)

	content := page.Find("div.journal-content").First()
	j.Header = innerHTML(page.Find("div.journal-header").First())
	j.Footer = innerHTML(page.Find("div.journal-footer").First())
	j.Content = innerHTML(content)
	j.Mentions = mentions(content)

	j.Comments = parseComments(doc.Find("div#comments-journal"))
	j.Stats = faapi.JournalStats{Comments: faapi.CountComments(j.Comments)}

	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// ParseJournalListing parses one page of a user's journals folder.
func (p *Parser) ParseJournalListing(html string) (*faapi.JournalsFolder, error) {
	doc, err := p.parse(html)
	if err != nil {
		return nil, err
	}

	owner := parsePageOwner(doc.Find("div#page-header").First())

	folder := &faapi.JournalsFolder{Results: []*faapi.JournalPartial{}}

	doc.Find(`section[id^="jid:"]`).Each(func(_ int, sel *goquery.Selection) {
		id := idFromHref(firstHref(sel.Find(`a[href*="/journal/"]`)))
		if id <= 0 {
			return
		}
		body := sel.Find("div.journal-body").First()
		jp := &faapi.JournalPartial{
			ID:       id,
			Title:    NormalizeSpace(sel.Find("h2").First().Text()),
			Author:   owner,
			Date:     dateOf(sel),
			Content:  innerHTML(body),
			Mentions: mentions(body),
			Stats: faapi.JournalStats{
				Comments: parseInt(trimSuffixWord(sel.Find("span.journal-comments").Text(), "Comments")),
			},
		}
		folder.Results = append(folder.Results, jp)
	})

	folder.Next = nextCursor(doc)
	return folder, nil
}
