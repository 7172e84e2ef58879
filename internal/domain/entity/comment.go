package entity

import "time"

// MaxCommentLen bounds comment text.
const MaxCommentLen = 500

// Comment belongs to exactly one post and one author.
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Text      string
	CreatedAt time.Time

	Author *Profile
}
