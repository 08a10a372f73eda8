package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ankit/blogd/internal/apperror"
	"github.com/ankit/blogd/internal/model"
	"github.com/ankit/blogd/internal/repository"
)

// Guard decides whether the current session may mutate a given post. It is
// invoked explicitly at the top of every mutating operation (post edit, post
// delete, comment delete) and returns a typed denial rather than aborting.
//
// LEGACY POLICY (default):
// A mutation is allowed only if the session is authenticated AND the user
// has authored at least one post overall AND the user's ID equals the author
// ID of the first post returned by the author-scoped lookup. The check is
// "is this user an author at all", NOT "does this user own *this* post" —
// kept as observed in production, which means any user who has published
// anything may mutate anyone's post. Enable strict mode to close that hole.
//
// STRICT POLICY (STRICT_AUTHOR_GUARD=true):
// A mutation is allowed only if the user owns the specific post being
// mutated.
//
// Either way, denial is apperror.ErrForbidden: a hard access-control
// failure, never transient, never retried.
type Guard struct {
	posts  repository.PostRepository
	strict bool
	logger *slog.Logger
}

// NewGuard creates a Guard. strict selects per-post ownership checking over
// the legacy "owns any post" policy.
func NewGuard(posts repository.PostRepository, strict bool, logger *slog.Logger) *Guard {
	return &Guard{
		posts:  posts,
		strict: strict,
		logger: logger,
	}
}

// CanMutate returns nil when userID may edit or delete target, and an
// ErrForbidden-kinded error otherwise. An empty userID (anonymous session)
// is always denied.
func (g *Guard) CanMutate(ctx context.Context, userID string, target *model.Post) error {
	if userID == "" {
		return apperror.Forbidden("you must be logged in to modify posts")
	}

	if g.strict {
		if target == nil || target.AuthorID != userID {
			g.logger.Info("mutation denied (strict)",
				slog.String("userID", userID),
			)
			return apperror.Forbidden("only the author of this post may modify it")
		}
		return nil
	}

	first, err := g.posts.FirstByAuthor(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// Never authored anything — not an author, hard denial.
			g.logger.Info("mutation denied: user has no authored posts",
				slog.String("userID", userID),
			)
			return apperror.Forbidden("only authors may modify posts")
		}
		return fmt.Errorf("service/guard: looking up posts by author %s: %w", userID, err)
	}

	if first.AuthorID != userID {
		return apperror.Forbidden("only authors may modify posts")
	}

	return nil
}
