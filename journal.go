package faapi

import (
	"context"
	"time"
)

// JournalStats holds the counters from a journal's page.
type JournalStats struct {
	Comments int `json:"comments"`
}

// JournalPartial is the journal information shown on a user's journals page,
// without comments.
type JournalPartial struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Author   UserPartial  `json:"author"`
	Stats    JournalStats `json:"stats"`
	Date     time.Time    `json:"date"`
	Content  string       `json:"content"`
	Mentions []string     `json:"mentions"`
}

// Journal is the full journal record as it appears on its page.
type Journal struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Author   UserPartial  `json:"author"`
	Stats    JournalStats `json:"stats"`
	Date     time.Time    `json:"date"`
	Header   string       `json:"header"`
	Footer   string       `json:"footer"`
	Content  string       `json:"content"`
	Mentions []string     `json:"mentions"`
	Comments []*Comment   `json:"comments"`
}

// Validate returns an error if the journal is missing required fields.
func (j *Journal) Validate() error {
	if j.ID <= 0 {
		return Errorf(EINVALID, "journal ID required")
	}
	if j.Author.Name == "" {
		return Errorf(EINVALID, "journal author required")
	}
	return nil
}

// JournalsFolder holds journals appearing on a user's journals page. Next is
// the number of the following page, empty on the last page.
type JournalsFolder struct {
	Results []*JournalPartial `json:"results"`
	Next    string            `json:"next"`
}

// JournalService retrieves journals and journal listings from the site.
type JournalService interface {
	// Journal retrieves a single journal by ID.
	// Returns ENOTFOUND if the journal does not exist.
	Journal(ctx context.Context, session *Session, id int64) (*Journal, error)

	// Journals retrieves one page of a user's journals folder.
	Journals(ctx context.Context, session *Session, username string, page string) (*JournalsFolder, error)
}
