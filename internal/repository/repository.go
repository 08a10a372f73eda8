// Package repository declares the storage interfaces the service layer
// depends on. The concrete implementation lives in repository/sqlite;
// tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/ankit/blogd/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository persists user identities and their password hashes.
//
// Create must detect a duplicate email atomically at write time (UNIQUE
// constraint), not via a prior read — two simultaneous registrations with
// the same email are serialized by the store and exactly one succeeds.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// PostRepository persists posts. Title and subtitle uniqueness is enforced
// by the store on both Create and Update.
//
// FirstByAuthor returns the author's first post (or ErrNotFound if they have
// never authored one) — the lookup the authorization guard is built on.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, opts ListOptions) ([]model.Post, error)
	FirstByAuthor(ctx context.Context, authorID string) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}
