// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: main.go creates the config, logger, and
// mailer; New() assembles the whole dependency chain in one place:
//
//	sqlite.DB → repositories → services (auth, guard, posts, comments)
//	          → handlers → routes
//
// Each layer only receives what it needs — services get repository
// interfaces, handlers get services, and nothing below the handler layer
// ever sees HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ankit/blogd/internal/auth"
	"github.com/ankit/blogd/internal/config"
	"github.com/ankit/blogd/internal/handler"
	"github.com/ankit/blogd/internal/mail"
	"github.com/ankit/blogd/internal/middleware"
	sqliteRepo "github.com/ankit/blogd/internal/repository/sqlite"
	"github.com/ankit/blogd/internal/service"
)

// Server owns the router, the database connection, and the HTTP lifecycle.
// The DB is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and wires the full dependency graph.
func New(cfg *config.Config, mailer mail.Sender, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(mailer); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the service/handler chain, and
// registers all routes.
//
// ROUTE STRUCTURE:
//
//	POST /register                → create account + auto-login
//	POST /login                   → establish session
//	GET  /logout                  → clear session
//	GET  /me                      → current user          [auth]
//	GET  /posts                   → list posts
//	GET  /posts/{id}              → full post + comments
//	POST /new-post                → create post           [auth]
//	POST /edit-post?post_id=      → update post           [auth + author guard]
//	POST /delete-post/{id}        → delete post           [auth + author guard]
//	POST /comment?post_id=        → create comment        [auth]
//	GET  /delete-comment?...      → delete comment        [auth + author guard]
//	POST /contact                 → send contact mail
func (s *Server) setupRoutes(mailer mail.Sender) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	users := s.db.Users()
	posts := s.db.Posts()
	comments := s.db.Comments()

	guard := service.NewGuard(posts, s.config.StrictAuthorGuard, s.logger)
	authSvc := service.NewAuthService(users, tokens, passwords, s.logger)
	postSvc := service.NewPostService(posts, guard, s.logger)
	commentSvc := service.NewCommentService(comments, posts, guard, s.logger)

	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	postHandler := handler.NewPostHandler(postSvc, commentSvc, s.logger)
	commentHandler := handler.NewCommentHandler(commentSvc, s.logger)
	contactHandler := handler.NewContactHandler(mailer, s.logger)

	// Public routes. Reads carry OptionalAuth so a logged-in visitor is
	// still identified without blocking anonymous readers.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(tokens))
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Get("/logout", authHandler.HandleLogout)
		r.Get("/posts", postHandler.HandleList)
		r.Get("/posts/{id}", postHandler.HandleGet)
		r.Post("/contact", contactHandler.HandleContact)
	})

	// Authenticated routes. The author guard runs inside the services for
	// the mutation endpoints; RequireAuth only establishes identity.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/me", authHandler.HandleMe)
		r.Post("/new-post", postHandler.HandleCreate)
		r.Post("/edit-post", postHandler.HandleEdit)
		r.Post("/delete-post/{id}", postHandler.HandleDelete)
		r.Post("/comment", commentHandler.HandleCreate)
		r.Get("/delete-comment", commentHandler.HandleDelete)
	})

	return nil
}

// Start runs the HTTP server and handles graceful shutdown:
// stop accepting connections, drain in-flight requests (30s), then close
// the database to flush the WAL and release the file lock.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.Bool("strictAuthorGuard", s.config.StrictAuthorGuard),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
