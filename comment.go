package faapi

import "time"

// Comment is a single comment on a submission or journal. Replies form a
// tree rooted at the top-level comments of the page.
type Comment struct {
	ID      int64       `json:"id"`
	Author  UserPartial `json:"author"`
	Date    time.Time   `json:"date"`
	Text    string      `json:"text"`
	Replies []*Comment  `json:"replies"`
	ReplyTo *int64      `json:"reply_to"`
	Edited  bool        `json:"edited"`
	Hidden  bool        `json:"hidden"`
}

// CountComments returns the total number of comments in the trees,
// including nested replies.
func CountComments(comments []*Comment) int {
	n := 0
	for _, c := range comments {
		n += 1 + CountComments(c.Replies)
	}
	return n
}
