package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FurryCoders/faapi"
)

// parseComments builds the comment trees from a comments container.
// The page renders the thread flat; nesting is encoded in each container's
// width style, with every reply level 3% narrower than its parent.
func parseComments(container *goquery.Selection) []*faapi.Comment {
	type frame struct {
		depth   int
		comment *faapi.Comment
	}

	roots := []*faapi.Comment{}
	var stack []frame

	container.Find("div.comment_container").Each(func(_ int, sel *goquery.Selection) {
		c := parseComment(sel)
		if c == nil {
			return
		}
		depth := commentDepth(sel)

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, c)
		} else {
			parent := stack[len(stack)-1].comment
			parentID := parent.ID
			c.ReplyTo = &parentID
			parent.Replies = append(parent.Replies, c)
		}
		stack = append(stack, frame{depth: depth, comment: c})
	})

	return roots
}

// parseComment reads a single comment container. Returns nil if the
// container carries no comment ID.
func parseComment(sel *goquery.Selection) *faapi.Comment {
	c := &faapi.Comment{Replies: []*faapi.Comment{}}

	id, ok := sel.Attr("id")
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(id, "cid:"), 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	c.ID = n

	if sel.HasClass("comment-hidden") {
		c.Hidden = true
		c.Text = NormalizeSpace(sel.Find("div.comment_text").Text())
		return c
	}

	status, name := statusAndName(sel.Find("a.comment_username").First().Text())
	c.Author = faapi.UserPartial{Name: name, Status: status}
	if src, ok := sel.Find("img.comment_useravatar").First().Attr("src"); ok {
		c.Author.AvatarURL = absoluteURL(src)
	}

	c.Date = dateOf(sel)
	c.Text = innerHTML(sel.Find("div.comment_text").First())
	c.Edited = sel.Find("img.edited, span.comment_edited").Length() > 0

	return c
}

// commentDepth derives the nesting level from the container's width style.
// Top-level comments render at width 100%.
func commentDepth(sel *goquery.Selection) int {
	style, ok := sel.Attr("style")
	if !ok {
		return 0
	}
	for _, decl := range strings.Split(style, ";") {
		k, v, found := strings.Cut(decl, ":")
		if !found || strings.TrimSpace(k) != "width" {
			continue
		}
		pct, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if err != nil {
			return 0
		}
		return (100 - pct) / 3
	}
	return 0
}
