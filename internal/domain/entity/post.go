package entity

import "time"

// MaxCaptionLen bounds post captions, matching the users' client contract.
const MaxCaptionLen = 2200

// Post is an image post owned by exactly one user. The owner is fixed at
// creation. ImageObjectKey is the storage deletion handle; it is empty for
// posts created from an external image URL.
type Post struct {
	ID             string
	UserID         string
	ImageURL       string
	ImageObjectKey string
	Caption        string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Hydrated by queries, not stored on the posts row.
	Author     *Profile
	LikesCount int
	Comments   []Comment
}
