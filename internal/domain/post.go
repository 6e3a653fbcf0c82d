package domain

import "time"

// Post is a user-owned photo post with a caption and ordered images.
type Post struct {
	ID        int64       `json:"id"`
	AuthorID  int64       `json:"authorId"`
	Caption   string      `json:"caption"`
	Images    []PostImage `json:"images"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// PostImage is a single image attached to a post.
type PostImage struct {
	ID     int64  `json:"id"`
	PostID int64  `json:"postId"`
	URL    string `json:"url"`
}
