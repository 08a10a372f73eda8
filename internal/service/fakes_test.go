package service

// Hand-written in-memory fakes for the repository interfaces. A fake (not a
// mock framework) keeps these tests dependency-free and easy to read — you
// can see exactly what the fake does.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/ankit/blogd/internal/apperror"
	"github.com/ankit/blogd/internal/auth"
	"github.com/ankit/blogd/internal/model"
	"github.com/ankit/blogd/internal/repository"
)

// testLogger discards nothing but only logs errors, keeping test output
// quiet.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ------------------------------------------------------------------------
// fakeUserRepo
// ------------------------------------------------------------------------

type fakeUserRepo struct {
	users   map[string]*model.User // keyed by internal ID
	byEmail map[string]*model.User
	nextID  int
	// set to a non-nil error to simulate a database failure
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	// The fake honors the store's atomic uniqueness guarantee
	if _, exists := f.byEmail[user.Email]; exists {
		return apperror.Conflict("email", "an account with this email already exists")
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	result := *u
	return &result, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// ------------------------------------------------------------------------
// fakePostRepo
// ------------------------------------------------------------------------

type fakePostRepo struct {
	posts  map[string]*model.Post
	nextID int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*model.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	for _, p := range f.posts {
		if p.Title == post.Title {
			return apperror.Conflict("title", "a post with this title already exists")
		}
		if p.Subtitle == post.Subtitle {
			return apperror.Conflict("subtitle", "a post with this subtitle already exists")
		}
	}
	f.nextID++
	post.ID = fmt.Sprintf("post-%d", f.nextID)
	// strictly increasing timestamps so ordering is deterministic
	post.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Second)
	post.UpdatedAt = post.CreatedAt
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", id)
	}
	result := *p
	return &result, nil
}

func (f *fakePostRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Post, error) {
	result := make([]model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if opts.Offset >= len(result) {
		return []model.Post{}, nil
	}
	result = result[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (f *fakePostRepo) FirstByAuthor(_ context.Context, authorID string) (*model.Post, error) {
	var first *model.Post
	for _, p := range f.posts {
		if p.AuthorID != authorID {
			continue
		}
		if first == nil || p.CreatedAt.Before(first.CreatedAt) {
			first = p
		}
	}
	if first == nil {
		return nil, apperror.NotFound("post by author", authorID)
	}
	result := *first
	return &result, nil
}

func (f *fakePostRepo) Update(_ context.Context, post *model.Post) error {
	stored, ok := f.posts[post.ID]
	if !ok {
		return apperror.NotFound("post", post.ID)
	}
	for id, p := range f.posts {
		if id == post.ID {
			continue
		}
		if p.Title == post.Title {
			return apperror.Conflict("title", "a post with this title already exists")
		}
		if p.Subtitle == post.Subtitle {
			return apperror.Conflict("subtitle", "a post with this subtitle already exists")
		}
	}
	post.UpdatedAt = time.Now()
	*stored = *post
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return apperror.NotFound("post", id)
	}
	delete(f.posts, id)
	return nil
}

var _ repository.PostRepository = (*fakePostRepo)(nil)

// ------------------------------------------------------------------------
// fakeCommentRepo
// ------------------------------------------------------------------------

type fakeCommentRepo struct {
	comments map[string]*model.Comment
	nextID   int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*model.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	f.nextID++
	comment.ID = fmt.Sprintf("comment-%d", f.nextID)
	comment.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Second)
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id string) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment", id)
	}
	result := *c
	return &result, nil
}

func (f *fakeCommentRepo) ListByPost(_ context.Context, postID string) ([]model.Comment, error) {
	result := []model.Comment{}
	for _, c := range f.comments {
		if c.PostID == postID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.comments[id]; !ok {
		return apperror.NotFound("comment", id)
	}
	delete(f.comments, id)
	return nil
}

var _ repository.CommentRepository = (*fakeCommentRepo)(nil)

// ------------------------------------------------------------------------
// shared service constructors
// ------------------------------------------------------------------------

// newTestAuthService wires an AuthService with fakes, bcrypt cost 4, and a
// deterministic token secret.
func newTestAuthService(t *testing.T, users *fakeUserRepo) *AuthService {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(4)

	return NewAuthService(users, tokens, passwords, testLogger())
}
