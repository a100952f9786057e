package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a user's public profile row. Login comes from the identity
// layer; Username is the user-chosen handle other users see.
type Profile struct {
	ID        int       `json:"id"`
	Login     string    `json:"-"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio,omitempty"`
	Admin     bool      `json:"admin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Post is a feed post. LikeCount is derived from the likes table on read,
// never stored as a counter.
type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a single comment on a post. One row per comment.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
