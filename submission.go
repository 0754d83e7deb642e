package faapi

import (
	"context"
	"time"
)

// SubmissionStats holds the counters from a submission's page.
type SubmissionStats struct {
	Views     int `json:"views"`
	Comments  int `json:"comments"`
	Favorites int `json:"favorites"`
}

// SubmissionUserFolder is a user-defined folder a submission belongs to.
type SubmissionUserFolder struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Group string `json:"group"`
}

// SubmissionPartial is the simplified submission information shown on
// listing pages (gallery, scraps, favorites).
type SubmissionPartial struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Author       UserPartial `json:"author"`
	Rating       string      `json:"rating"`
	Type         string      `json:"type"`
	ThumbnailURL string      `json:"thumbnail_url"`
}

// Submission is the full submission record as it appears on its page.
type Submission struct {
	ID                 int64                  `json:"id"`
	Title              string                 `json:"title"`
	Author             UserPartial            `json:"author"`
	Date               time.Time              `json:"date"`
	Tags               []string               `json:"tags"`
	Category           string                 `json:"category"`
	Species            string                 `json:"species"`
	Gender             string                 `json:"gender"`
	Rating             string                 `json:"rating"`
	Type               string                 `json:"type"`
	Stats              SubmissionStats        `json:"stats"`
	Description        string                 `json:"description"`
	Footer             string                 `json:"footer"`
	Mentions           []string               `json:"mentions"`
	Folder             string                 `json:"folder"`
	UserFolders        []SubmissionUserFolder `json:"user_folders"`
	FileURL            string                 `json:"file_url"`
	ThumbnailURL       string                 `json:"thumbnail_url"`
	Comments           []*Comment             `json:"comments"`
	Prev               *int64                 `json:"prev"`
	Next               *int64                 `json:"next"`
	Favorite           bool                   `json:"favorite"`
	FavoriteToggleLink string                 `json:"favorite_toggle_link"`
}

// Validate returns an error if the submission is missing required fields.
func (s *Submission) Validate() error {
	if s.ID <= 0 {
		return Errorf(EINVALID, "submission ID required")
	}
	if s.Author.Name == "" {
		return Errorf(EINVALID, "submission author required")
	}
	return nil
}

// SubmissionsFolder holds submissions appearing on a listing page. Next is
// the cursor for the following page, empty on the last page. Gallery and
// scraps pages use numeric cursors; favorites pages use an opaque token.
type SubmissionsFolder struct {
	Results []*SubmissionPartial `json:"results"`
	Next    string               `json:"next"`
}

// SubmissionService retrieves submissions and submission listings from the
// site.
type SubmissionService interface {
	// Submission retrieves a single submission by ID.
	// Returns ENOTFOUND if the submission does not exist, EUNAUTHORIZED if
	// it requires a logged-in session.
	Submission(ctx context.Context, session *Session, id int64) (*Submission, error)

	// Gallery retrieves one page of a user's gallery folder.
	Gallery(ctx context.Context, session *Session, username string, page string) (*SubmissionsFolder, error)

	// Scraps retrieves one page of a user's scraps folder.
	Scraps(ctx context.Context, session *Session, username string, page string) (*SubmissionsFolder, error)

	// Favorites retrieves one page of a user's favorites folder.
	Favorites(ctx context.Context, session *Session, username string, page string) (*SubmissionsFolder, error)
}
