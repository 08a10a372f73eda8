package model

import "time"

// Comment is a reply left on a post by an authenticated user.
// Both PostID and UserID are required; deleting a post cascades to its
// comments (enforced by the store's foreign keys).
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
