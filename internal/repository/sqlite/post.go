package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/ankit/blogd/internal/apperror"
	"github.com/ankit/blogd/internal/model"
	"github.com/ankit/blogd/internal/repository"
)

// Compile-time check that *PostDB implements repository.PostRepository.
var _ repository.PostRepository = (*PostDB)(nil)

// PostDB provides post persistence on the shared connection pool.
// Obtain one via DB.Posts().
type PostDB struct {
	conn *sql.DB
}

const postColumns = `id, author_id, title, subtitle, date, link, body, img_url, created_at, updated_at`

// Create inserts a new post.
//
// Title and subtitle uniqueness is enforced here, atomically, by the UNIQUE
// constraints — a violating write fails with apperror.ErrConflict and never
// silently overwrites an existing post. The caller's struct is modified in
// place: ID and timestamps are set here. AuthorID must already be set and is
// immutable from this point on.
func (db *PostDB) Create(ctx context.Context, post *model.Post) error {
	post.ID = xid.New().String()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, title, subtitle, date, link, body, img_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID,
		post.AuthorID,
		post.Title,
		post.Subtitle,
		post.Date,
		post.Link,
		post.Body,
		post.ImgURL,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return db.mapPostWriteError(err, post.ID)
	}

	return nil
}

// GetByID retrieves a single post by its ID.
func (db *PostDB) GetByID(ctx context.Context, id string) (*model.Post, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("sqlite: getting post %s: %w", id, err)
	}

	return post, nil
}

// List retrieves posts, newest first, with pagination.
func (db *PostDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Post, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}

	return posts, nil
}

// FirstByAuthor returns the earliest post authored by the given user, or
// apperror.ErrNotFound if they have never authored one. This is the lookup
// the authorization guard builds its "is this user an author at all" check
// on.
func (db *PostDB) FirstByAuthor(ctx context.Context, authorID string) (*model.Post, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE author_id = ?
		 ORDER BY created_at ASC
		 LIMIT 1`,
		authorID,
	)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("post by author", authorID)
		}
		return nil, fmt.Errorf("sqlite: getting first post by author %s: %w", authorID, err)
	}

	return post, nil
}

// Update modifies an existing post's editable fields. The author and the
// publication date are immutable; uniqueness of the new title/subtitle is
// checked by the same constraints as Create.
func (db *PostDB) Update(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE posts
		 SET title = ?, subtitle = ?, link = ?, body = ?, img_url = ?, updated_at = ?
		 WHERE id = ?`,
		post.Title,
		post.Subtitle,
		post.Link,
		post.Body,
		post.ImgURL,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return db.mapPostWriteError(err, post.ID)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("post", post.ID)
	}

	return nil
}

// Delete removes a post. The ON DELETE CASCADE on comments.post_id removes
// its comments in the same statement.
func (db *PostDB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("post", id)
	}

	return nil
}

// mapPostWriteError translates constraint failures on post writes into
// domain conflicts, naming the offending field.
func (db *PostDB) mapPostWriteError(err error, id string) error {
	switch {
	case isUniqueViolation(err, "posts.title"):
		return apperror.Conflict("title", "a post with this title already exists")
	case isUniqueViolation(err, "posts.subtitle"):
		return apperror.Conflict("subtitle", "a post with this subtitle already exists")
	default:
		return fmt.Errorf("sqlite: writing post %s: %w", id, err)
	}
}

// scanner is satisfied by both *sql.Row and *sql.Rows, so scanPost serves
// single-row and multi-row queries alike.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*model.Post, error) {
	var p model.Post
	err := s.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Title,
		&p.Subtitle,
		&p.Date,
		&p.Link,
		&p.Body,
		&p.ImgURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
