package model

import "time"

// Post represents a published blog post.
//
// AuthorID is required and immutable after creation — a post never changes
// hands. Title and Subtitle are each UNIQUE across all posts; the store
// enforces both constraints atomically at write time.
//
// Date is the publication day as a calendar date (dd/mm/yyyy), not a
// timestamp. It's formatted once at creation and displayed as-is, which is
// why it's a string rather than a time.Time.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Date      string    `json:"date"` // publication day, dd/mm/yyyy
	Link      string    `json:"link"`
	Body      string    `json:"body"`
	ImgURL    string    `json:"imgUrl"` // optional header image
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
