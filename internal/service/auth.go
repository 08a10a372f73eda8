// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses, sets cookies
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services take repository interfaces, not concrete types, so tests can
// substitute in-memory fakes, and no service ever imports the sqlite
// package. "Current user" is a value threaded through each call as a plain
// userID string — never ambient global state.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ankit/blogd/internal/apperror"
	"github.com/ankit/blogd/internal/auth"
	"github.com/ankit/blogd/internal/model"
	"github.com/ankit/blogd/internal/repository"
)

// AuthService handles registration, login, and session resolution.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users      repository.UserRepository → read/write user records
//   - tokens     *auth.TokenService        → mint/validate session tokens
//   - passwords  *auth.PasswordService     → bcrypt hashing and verification
//   - logger     *slog.Logger              → structured logging
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult is returned by Register and Login. It bundles the user record
// and the issued session token so the HTTP handler can set the cookie and
// respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new account and immediately establishes a session for
// it — registration auto-logs-in the new user, no separate login step.
//
// FAILURE MODES (all user-facing, no state change):
//   - the two password fields differ           → ErrValidation
//   - an account with the email already exists → ErrConflict
//
// The duplicate check is NOT a read-then-write: the repository's UNIQUE
// constraint decides atomically, so two racing registrations for one email
// leave exactly one user record.
func (s *AuthService) Register(ctx context.Context, name, email, password, confirm string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	if password != confirm {
		return nil, apperror.ValidationFailed("confirmPassword", "your passwords do not match, please try again")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// ErrConflict (duplicate email) passes through untouched — the
		// handler tells the user to log in instead.
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and establishes a session.
//
// The two failure modes are deliberately distinguishable, matching the
// product's behavior of telling the user WHICH part was wrong:
//   - unknown email → ErrNotFound ("this user does not exist...")
//   - wrong password → ErrUnauthorized ("incorrect password...")
//
// Password comparison happens against the stored bcrypt hash only, in
// constant time. No session is created on either failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: "this user does not exist, please check the email that you have entered",
			}
		}
		return nil, fmt.Errorf("service/auth: looking up user by email: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("login rejected: wrong password", slog.String("userID", user.ID))
		return nil, apperror.Unauthorized("incorrect password, please check the password and try again")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}

// GetUserByID returns the user for the given internal ID. Used to resolve
// the session's subject claim back to a full user record.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}

	return user, nil
}

// ValidateToken validates a session token and returns the userID it binds.
// A thin delegation so callers only need the service package.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return userID, nil
}
