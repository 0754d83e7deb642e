package faapi

// SubmissionParser parses submission pages and submission listing pages
// (gallery, scraps, favorites).
type SubmissionParser interface {
	// ParseSubmission parses a submission page.
	// Returns EUNAUTHORIZED if the page is a login wall, ENOTFOUND if it
	// is the site's system-error page.
	ParseSubmission(html string) (*Submission, error)

	// ParseSubmissionListing parses a gallery, scraps, or favorites page.
	ParseSubmissionListing(html string) (*SubmissionsFolder, error)
}

// JournalParser parses journal pages and journal listing pages.
type JournalParser interface {
	ParseJournal(html string) (*Journal, error)
	ParseJournalListing(html string) (*JournalsFolder, error)
}

// UserParser parses user pages and watchlist pages.
type UserParser interface {
	ParseUser(html string) (*User, error)
	ParseWatchlist(html string) (*Watchlist, error)
}
