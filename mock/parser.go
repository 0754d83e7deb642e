package mock

import "github.com/FurryCoders/faapi"

var _ faapi.SubmissionParser = (*SubmissionParser)(nil)

// SubmissionParser is a mock implementation of faapi.SubmissionParser.
type SubmissionParser struct {
	ParseSubmissionFn        func(html string) (*faapi.Submission, error)
	ParseSubmissionListingFn func(html string) (*faapi.SubmissionsFolder, error)
}

func (p *SubmissionParser) ParseSubmission(html string) (*faapi.Submission, error) {
	return p.ParseSubmissionFn(html)
}

func (p *SubmissionParser) ParseSubmissionListing(html string) (*faapi.SubmissionsFolder, error) {
	return p.ParseSubmissionListingFn(html)
}

var _ faapi.JournalParser = (*JournalParser)(nil)

// JournalParser is a mock implementation of faapi.JournalParser.
type JournalParser struct {
	ParseJournalFn        func(html string) (*faapi.Journal, error)
	ParseJournalListingFn func(html string) (*faapi.JournalsFolder, error)
}

func (p *JournalParser) ParseJournal(html string) (*faapi.Journal, error) {
	return p.ParseJournalFn(html)
}

func (p *JournalParser) ParseJournalListing(html string) (*faapi.JournalsFolder, error) {
	return p.ParseJournalListingFn(html)
}

var _ faapi.UserParser = (*UserParser)(nil)

// UserParser is a mock implementation of faapi.UserParser.
type UserParser struct {
	ParseUserFn      func(html string) (*faapi.User, error)
	ParseWatchlistFn func(html string) (*faapi.Watchlist, error)
}

func (p *UserParser) ParseUser(html string) (*faapi.User, error) {
	return p.ParseUserFn(html)
}

func (p *UserParser) ParseWatchlist(html string) (*faapi.Watchlist, error) {
	return p.ParseWatchlistFn(html)
}
