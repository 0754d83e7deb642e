package faapi

// Candidate is one selector tried during text extraction. When Attr is
// empty the element's text content is used; otherwise the named attribute
// value is used.
type Candidate struct {
	Selector string
	Attr     string
}

// Target is an ordered list of candidates to try during extraction,
// most-specific first.
type Target struct {
	Candidates []Candidate
}

// Extraction is the outcome of extracting text from a page. Found
// distinguishes "no match" from a present-but-empty value: an absent result
// is a normal outcome, never an error.
type Extraction struct {
	Text  string
	Found bool
}

// Extractor extracts normalized text from HTML documents.
type Extractor interface {
	// Extract tries each candidate in target, in order, and returns the
	// first non-empty whitespace-normalized match. Malformed markup is
	// parsed leniently and yields an absent result rather than an error;
	// only content that cannot be interpreted as text at all fails, with
	// EINVALID.
	Extract(html string, target Target) (Extraction, error)
}
