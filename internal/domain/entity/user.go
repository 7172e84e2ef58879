package entity

import "time"

// User is the aggregate root for the social graph.
// Password holds the bcrypt hash and must never reach a response body.
type User struct {
	ID             string
	Username       string
	Email          string
	Password       string
	FullName       string
	Bio            string
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Profile is the public projection of a User used when expanding
// followers/following/likers lists and post authors.
type Profile struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
}

// Profile returns the public projection of u.
func (u *User) Profile() Profile {
	return Profile{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserStats carries the counters shown on a public profile.
type UserStats struct {
	Followers int `json:"followersCount"`
	Following int `json:"followingCount"`
	Posts     int `json:"postsCount"`
}
