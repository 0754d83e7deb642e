// Package goquery provides goquery-based parsers for Fur Affinity pages.
// All parsing is lenient: malformed markup degrades to absent fields rather
// than errors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FurryCoders/faapi"
)

// Ensure TextExtractor implements faapi.Extractor at compile time.
var _ faapi.Extractor = (*TextExtractor)(nil)

// TextExtractor extracts normalized text from HTML documents by trying
// candidate selectors in priority order.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract tries each candidate in target, in order, and returns the first
// one that resolves to non-empty normalized text. No match is a normal
// absent result, not an error. Extraction is a pure function of its inputs:
// the document is never mutated and identical inputs yield identical
// results.
func (e *TextExtractor) Extract(html string, target faapi.Target) (faapi.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// net/html recovers from structural errors, so this only fires
		// when the input cannot be interpreted as markup at all.
		return faapi.Extraction{}, faapi.Errorf(faapi.EINVALID, "failed to parse HTML: %v", err)
	}
	return extract(doc.Selection, target), nil
}

// extract runs the candidate loop against an already-parsed selection.
// Page parsers share this to pull scalar fields with fallback selectors.
func extract(sel *goquery.Selection, target faapi.Target) faapi.Extraction {
	for _, c := range target.Candidates {
		match := sel.Find(c.Selector).First()
		if match.Length() == 0 {
			continue
		}
		var raw string
		if c.Attr != "" {
			var ok bool
			raw, ok = match.Attr(c.Attr)
			if !ok {
				continue
			}
		} else {
			raw = match.Text()
		}
		if text := NormalizeSpace(raw); text != "" {
			return faapi.Extraction{Text: text, Found: true}
		}
	}
	return faapi.Extraction{}
}

// NormalizeSpace collapses runs of whitespace to single spaces and trims
// leading and trailing whitespace.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
