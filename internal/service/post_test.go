package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ankit/blogd/internal/apperror"
)

// newTestPostService wires a PostService over fresh fakes using the legacy
// guard policy. The fake post repo is returned for direct inspection.
func newTestPostService(t *testing.T) (*PostService, *fakePostRepo) {
	t.Helper()
	posts := newFakePostRepo()
	guard := NewGuard(posts, false, testLogger())
	return NewPostService(posts, guard, testLogger()), posts
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestPostServiceCreate(t *testing.T) {
	svc, _ := newTestPostService(t)

	post, err := svc.Create(context.Background(), "user-1", "Hello", "A first post", "", "Hello, world.", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if post.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if post.AuthorID != "user-1" {
		t.Errorf("AuthorID = %q, want %q", post.AuthorID, "user-1")
	}
	// Publication date is a dd/mm/yyyy calendar day, set by the service.
	if len(post.Date) != 10 || post.Date[2] != '/' || post.Date[5] != '/' {
		t.Errorf("Date = %q, want dd/mm/yyyy", post.Date)
	}
}

func TestPostServiceCreate_Anonymous(t *testing.T) {
	svc, _ := newTestPostService(t)

	_, err := svc.Create(context.Background(), "", "Hello", "sub", "", "body", "")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Create() error = %v, want ErrUnauthorized", err)
	}
}

func TestPostServiceCreate_Validation(t *testing.T) {
	svc, _ := newTestPostService(t)

	tests := []struct {
		name     string
		title    string
		subtitle string
		body     string
	}{
		{name: "empty title", title: "", subtitle: "sub", body: "body"},
		{name: "whitespace title", title: "   ", subtitle: "sub", body: "body"},
		{name: "empty subtitle", title: "Hello", subtitle: "", body: "body"},
		{name: "empty body", title: "Hello", subtitle: "sub", body: ""},
		{name: "title too long", title: strings.Repeat("a", MaxTitleLength+1), subtitle: "sub", body: "body"},
		{name: "subtitle too long", title: "Hello", subtitle: strings.Repeat("a", MaxSubtitleLength+1), body: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", tt.title, tt.subtitle, "", tt.body, "")
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestPostServiceCreate_DuplicateTitle(t *testing.T) {
	svc, _ := newTestPostService(t)

	if _, err := svc.Create(context.Background(), "user-1", "Hello", "sub one", "", "body", ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := svc.Create(context.Background(), "user-2", "Hello", "sub two", "", "body", "")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestPostServiceUpdate(t *testing.T) {
	svc, _ := newTestPostService(t)

	post, err := svc.Create(context.Background(), "user-1", "Hello", "sub", "", "body", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(context.Background(), "user-1", post.ID, "Hello v2", "", "", "new body", "")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Hello v2" {
		t.Errorf("Title = %q, want %q", updated.Title, "Hello v2")
	}
	// Empty subtitle means "keep"; author and date never change.
	if updated.Subtitle != "sub" {
		t.Errorf("Subtitle = %q, want unchanged %q", updated.Subtitle, "sub")
	}
	if updated.AuthorID != "user-1" {
		t.Errorf("AuthorID = %q, want unchanged %q", updated.AuthorID, "user-1")
	}
	if updated.Date != post.Date {
		t.Errorf("Date = %q, want unchanged %q", updated.Date, post.Date)
	}
}

func TestPostServiceUpdate_NonAuthorForbidden(t *testing.T) {
	svc, _ := newTestPostService(t)

	post, err := svc.Create(context.Background(), "user-1", "Hello", "sub", "", "body", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// user-2 has no posts of their own, so the guard denies the edit.
	_, err = svc.Update(context.Background(), "user-2", post.ID, "Hijacked", "", "", "", "")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Update() error = %v, want ErrForbidden", err)
	}
}

func TestPostServiceUpdate_NotFound(t *testing.T) {
	svc, _ := newTestPostService(t)

	// Missing post wins over missing rights: 404 before the guard runs.
	_, err := svc.Update(context.Background(), "user-1", "no-such-post", "x", "", "", "", "")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestPostServiceDelete(t *testing.T) {
	svc, posts := newTestPostService(t)

	post, err := svc.Create(context.Background(), "user-1", "Doomed", "sub", "", "body", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), "user-1", post.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(posts.posts) != 0 {
		t.Errorf("post store contains %d records after delete, want 0", len(posts.posts))
	}
}

func TestPostServiceDelete_NonAuthorForbidden(t *testing.T) {
	svc, posts := newTestPostService(t)

	post, err := svc.Create(context.Background(), "user-1", "Hello", "sub", "", "body", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err = svc.Delete(context.Background(), "user-2", post.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("Delete() error = %v, want ErrForbidden", err)
	}
	if len(posts.posts) != 1 {
		t.Error("denied delete must not remove the post")
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestPostServiceList_ClampsLimit(t *testing.T) {
	svc, _ := newTestPostService(t)

	for i := 0; i < 3; i++ {
		title := strings.Repeat("x", i+1) // distinct titles and subtitles
		if _, err := svc.Create(context.Background(), "user-1", title, "sub "+title, "", "body", ""); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	// A nonsense limit falls back to the default rather than erroring.
	posts, err := svc.List(context.Background(), -5, -3)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 3 {
		t.Errorf("List() returned %d posts, want 3", len(posts))
	}

	posts, err = svc.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("List(limit=2) returned %d posts, want 2", len(posts))
	}
}
