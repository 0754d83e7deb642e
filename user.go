package faapi

import (
	"context"
	"strings"
	"time"
)

// UserStats holds the counters from a user's page.
type UserStats struct {
	Views          int `json:"views"`
	Submissions    int `json:"submissions"`
	Favorites      int `json:"favorites"`
	CommentsEarned int `json:"comments_earned"`
	CommentsMade   int `json:"comments_made"`
	Journals       int `json:"journals"`
}

// UserPartial is the simplified user information attached to submissions,
// journals, comments, and watchlist entries.
type UserPartial struct {
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Title     string     `json:"title"`
	AvatarURL string     `json:"avatar_url"`
	JoinDate  *time.Time `json:"join_date"`
}

// User is the full user record as it appears on their personal page.
type User struct {
	Name              string            `json:"name"`
	Status            string            `json:"status"`
	Title             string            `json:"title"`
	JoinDate          *time.Time        `json:"join_date"`
	Profile           string            `json:"profile"`
	Stats             UserStats         `json:"stats"`
	Info              map[string]string `json:"info"`
	Contacts          map[string]string `json:"contacts"`
	AvatarURL         string            `json:"avatar_url"`
	BannerURL         string            `json:"banner_url"`
	Watched           bool              `json:"watched"`
	WatchedToggleLink string            `json:"watched_toggle_link"`
	Blocked           bool              `json:"blocked"`
	BlockedToggleLink string            `json:"blocked_toggle_link"`
}

// Watchlist holds users appearing on a watchlist page.
type Watchlist struct {
	Results []*UserPartial `json:"results"`
	Next    string         `json:"next"`
}

// UserService retrieves user pages from the site.
type UserService interface {
	// User retrieves a user's details, profile text, and stats.
	// Returns ENOTFOUND if the user does not exist.
	User(ctx context.Context, session *Session, username string) (*User, error)

	// Watchlist retrieves one page of the users a user watches.
	Watchlist(ctx context.Context, session *Session, username string, page string) (*Watchlist, error)
}

// NormalizeUsername converts a display or URL-safe username into the form
// used in page URLs. Underscores are display-only on the site and are
// stripped.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(username), "_", ""))
}
