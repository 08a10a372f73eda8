package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ankit/blogd/internal/apperror"
	"github.com/ankit/blogd/internal/model"
	"github.com/ankit/blogd/internal/repository"
)

// Validation constants.
const (
	MaxTitleLength    = 200
	MaxSubtitleLength = 250
	MaxBodyLength     = 200000 // ~200KB of formatted text
	DefaultListLimit  = 20
	MaxListLimit      = 100
)

// postDateFormat renders the publication day as dd/mm/yyyy — a calendar
// date, not a timestamp.
const postDateFormat = "02/01/2006"

// PostService handles business logic for posts: validation, the publication
// date, and routing every mutation through the authorization guard before
// the repository is touched.
type PostService struct {
	posts  repository.PostRepository
	guard  *Guard
	logger *slog.Logger
}

// NewPostService creates a PostService.
func NewPostService(posts repository.PostRepository, guard *Guard, logger *slog.Logger) *PostService {
	return &PostService{
		posts:  posts,
		guard:  guard,
		logger: logger,
	}
}

// Create validates and saves a new post authored by authorID.
//
// Creation requires authentication but NOT the author guard — a first post
// is what makes a user an author in the first place. Duplicate titles and
// subtitles come back from the repository as ErrConflict.
func (s *PostService) Create(ctx context.Context, authorID, title, subtitle, link, body, imgURL string) (*model.Post, error) {
	if authorID == "" {
		return nil, apperror.Unauthorized("you must be logged in to publish a post")
	}

	title = strings.TrimSpace(title)
	subtitle = strings.TrimSpace(subtitle)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if subtitle == "" {
		return nil, apperror.ValidationFailed("subtitle", "subtitle is required")
	}
	if len(subtitle) > MaxSubtitleLength {
		return nil, apperror.ValidationFailed("subtitle",
			fmt.Sprintf("subtitle must be %d characters or less", MaxSubtitleLength))
	}
	if body == "" {
		return nil, apperror.ValidationFailed("body", "body is required")
	}
	if len(body) > MaxBodyLength {
		return nil, apperror.ValidationFailed("body",
			fmt.Sprintf("body must be %d characters or less", MaxBodyLength))
	}

	post := &model.Post{
		AuthorID: authorID,
		Title:    title,
		Subtitle: subtitle,
		Date:     time.Now().Format(postDateFormat),
		Link:     strings.TrimSpace(link),
		Body:     body,
		ImgURL:   strings.TrimSpace(imgURL),
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		slog.String("id", post.ID),
		slog.String("authorID", post.AuthorID),
		slog.String("title", post.Title),
	)

	return post, nil
}

// GetByID retrieves a post. Readable by anyone, including anonymous
// visitors.
func (s *PostService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "post ID is required")
	}

	return s.posts.GetByID(ctx, id)
}

// List retrieves posts with pagination, newest first.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.posts.List(ctx, repository.ListOptions{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return posts, nil
}

// Update edits an existing post on behalf of userID.
//
// Order matters: fetch (404 for a missing post), then guard (403 for a
// non-author), then write. The author and publication date never change;
// empty title/subtitle mean "keep the current value", mirroring a form
// pre-filled with the post being edited.
func (s *PostService) Update(ctx context.Context, userID, postID, title, subtitle, link, body, imgURL string) (*model.Post, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, apperror.ValidationFailed("post_id", "post ID is required")
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.CanMutate(ctx, userID, post); err != nil {
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		if len(title) > MaxTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
		}
		post.Title = title
	}
	if subtitle = strings.TrimSpace(subtitle); subtitle != "" {
		if len(subtitle) > MaxSubtitleLength {
			return nil, apperror.ValidationFailed("subtitle",
				fmt.Sprintf("subtitle must be %d characters or less", MaxSubtitleLength))
		}
		post.Subtitle = subtitle
	}
	if body != "" {
		if len(body) > MaxBodyLength {
			return nil, apperror.ValidationFailed("body",
				fmt.Sprintf("body must be %d characters or less", MaxBodyLength))
		}
		post.Body = body
	}
	post.Link = strings.TrimSpace(link)
	post.ImgURL = strings.TrimSpace(imgURL)

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post updated",
		slog.String("id", post.ID),
		slog.String("userID", userID),
	)

	return post, nil
}

// Delete removes a post on behalf of userID, subject to the same guard as
// Update. The store cascades the post's comments away with it.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return apperror.ValidationFailed("post_id", "post ID is required")
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.guard.CanMutate(ctx, userID, post); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info("post deleted",
		slog.String("id", postID),
		slog.String("userID", userID),
	)
	return nil
}
