// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere
// Go works.
//
// The store is the single shared mutable resource in the whole application.
// Concurrent writes (two registrations racing on one email, two posts racing
// on one title) are serialized by SQLite itself: the UNIQUE constraints below
// fail atomically at write time, and isUniqueViolation translates those
// failures into domain conflicts.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// DB wraps a sql.DB connection pool. The per-table repositories (UserDB,
// PostDB, CommentDB) share this pool; the server owns the lifecycle and
// closes it on shutdown.
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/blog.db"  → file-based database (persistent)
//   - ":memory:"      → in-memory database (great for tests, lost on close)
//
// The pragmas ride in the DSN so the driver applies them to EVERY pooled
// connection. foreign_keys in particular is per-connection state in SQLite:
// a one-off Exec would only turn it on for whichever connection happened to
// run it, and cascade deletes would silently stop working on the others.
//
//   - journal_mode(WAL): concurrent reads while a write is in flight
//   - foreign_keys(1):   posts reference users, comments reference posts,
//     and deleting a post must cascade to its comments
//   - busy_timeout:      wait for the writer lock instead of failing fast
func New(dbPath string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection: a second pooled
	// connection would see a fresh, empty database. Pin the pool to one.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// Ping forces an immediate connection so a bad path or permissions
	// problem surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository backed by this connection pool.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Posts returns the post repository backed by this connection pool.
func (db *DB) Posts() *PostDB { return &PostDB{conn: db.conn} }

// Comments returns the comment repository backed by this connection pool.
func (db *DB) Comments() *CommentDB { return &CommentDB{conn: db.conn} }

// migrate creates the schema. CREATE TABLE IF NOT EXISTS is idempotent, so
// running it on every startup is safe.
//
// UNIQUE constraints carry the core invariants:
//   - users.email: one account per address
//   - posts.title, posts.subtitle: unique across ALL posts at all times
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id         TEXT PRIMARY KEY,
			author_id  TEXT NOT NULL REFERENCES users(id),
			title      TEXT NOT NULL UNIQUE,
			subtitle   TEXT NOT NULL UNIQUE,
			date       TEXT NOT NULL,
			link       TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL,
			img_url    TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);
		CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating posts table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id         TEXT PRIMARY KEY,
			post_id    TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			user_id    TEXT NOT NULL REFERENCES users(id),
			body       TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure on the given column (e.g. "users.email", "posts.title").
//
// The driver reports constraint failures as *sqlite.Error with an extended
// result code. SQLite's message names the violated column
// ("UNIQUE constraint failed: posts.title"), which is how we tell a title
// conflict from a subtitle conflict on the same INSERT.
func isUniqueViolation(err error, column string) bool {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	if serr.Code() != sqlite3lib.SQLITE_CONSTRAINT_UNIQUE &&
		serr.Code() != sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY {
		return false
	}
	return column == "" || strings.Contains(serr.Error(), column)
}
