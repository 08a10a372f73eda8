package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/ankit/blogd/internal/apperror"
	"github.com/ankit/blogd/internal/model"
)

func TestCommentCreateAndListByPost(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db.Users(), "Alice", "alice@x.com")
	commenter := createTestUser(t, db.Users(), "Bob", "bob@x.com")
	post := createTestPost(t, db.Posts(), author.ID, "Hello", "sub")
	c := db.Comments()

	first := &model.Comment{PostID: post.ID, UserID: commenter.ID, Body: "first!"}
	if err := c.Create(context.Background(), first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID == "" {
		t.Error("Create() did not set comment.ID")
	}
	if first.CreatedAt.IsZero() {
		t.Error("Create() did not set comment.CreatedAt")
	}

	second := &model.Comment{PostID: post.ID, UserID: author.ID, Body: "thanks"}
	if err := c.Create(context.Background(), second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	comments, err := c.ListByPost(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("ListByPost() error = %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("ListByPost() returned %d comments, want 2", len(comments))
	}
	// Conversation order: oldest first
	if comments[0].Body != "first!" {
		t.Errorf("comments[0].Body = %q, want %q", comments[0].Body, "first!")
	}
}

func TestCommentListByPost_Empty(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db.Users(), "Alice", "alice@x.com")
	post := createTestPost(t, db.Posts(), author.ID, "Quiet", "no replies")

	comments, err := db.Comments().ListByPost(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("ListByPost() error = %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("ListByPost() returned %d comments, want 0", len(comments))
	}
}

func TestCommentDelete(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db.Users(), "Alice", "alice@x.com")
	post := createTestPost(t, db.Posts(), author.ID, "Hello", "sub")
	c := db.Comments()

	comment := &model.Comment{PostID: post.ID, UserID: author.ID, Body: "delete me"}
	if err := c.Create(context.Background(), comment); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := c.Delete(context.Background(), comment.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := c.GetByID(context.Background(), comment.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestCommentDelete_NotFound(t *testing.T) {
	c := newTestDB(t).Comments()

	err := c.Delete(context.Background(), "no-such-comment")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
