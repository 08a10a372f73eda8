package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ankit/blogd/internal/apperror"
	"github.com/ankit/blogd/internal/model"
	"github.com/ankit/blogd/internal/repository"
)

const MaxCommentLength = 2000

// CommentService handles comment creation and deletion. Creation only needs
// an authenticated user; deletion goes through the same author guard as post
// mutation — the check is evaluated against post authorship, not per-comment
// ownership.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	guard    *Guard
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	guard *Guard,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		guard:    guard,
		logger:   logger,
	}
}

// Create adds a comment by userID to the given post. Any authenticated user
// may comment; the post must exist (404 otherwise).
func (s *CommentService) Create(ctx context.Context, userID, postID, body string) (*model.Comment, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("please log in to comment")
	}

	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, apperror.ValidationFailed("post_id", "post ID is required")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperror.ValidationFailed("comment", "comment text is required")
	}
	if len(body) > MaxCommentLength {
		return nil, apperror.ValidationFailed("comment", "comment is too long")
	}

	// Confirm the post exists before writing; a dangling post_id would
	// otherwise surface as an opaque foreign-key error.
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID: postID,
		UserID: userID,
		Body:   body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		slog.String("id", comment.ID),
		slog.String("postID", postID),
		slog.String("userID", userID),
	)

	return comment, nil
}

// ListByPost returns a post's comments in conversation order.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, apperror.ValidationFailed("post_id", "post ID is required")
	}

	return s.comments.ListByPost(ctx, postID)
}

// Delete removes a comment on behalf of userID.
//
// The guard runs against the comment's PARENT POST, so deletion rights
// follow post authorship: in legacy mode any author may delete, in strict
// mode only the post's owner may. The commenting user gets no special
// treatment beyond what the guard grants them.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return apperror.ValidationFailed("comment_id", "comment ID is required")
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	post, err := s.posts.GetByID(ctx, comment.PostID)
	if err != nil {
		return err
	}

	if err := s.guard.CanMutate(ctx, userID, post); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	s.logger.Info("comment deleted",
		slog.String("id", commentID),
		slog.String("userID", userID),
	)
	return nil
}
